// Package element 汇总全部元件类型，导入即完成注册
package element

import (
	_ "circuitlab/element/bulb"
	_ "circuitlab/element/capacitor"
	_ "circuitlab/element/inductor"
	_ "circuitlab/element/resistor"
	_ "circuitlab/element/terminal"
	_ "circuitlab/element/vcc"
)
