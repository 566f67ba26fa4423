package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// resetFlags 命令参数是包级变量，每次执行前恢复默认值
func resetFlags() {
	verbose, noColor, envFile = false, false, ".env"
	voltage, frequency, ratedVoltage, ratedPower = 220, 0, 220, 50
	couplingName, groupName = "series", "series"
	sweepStart, sweepStop, sweepPoints, sweepScale = "10", "10k", 10, "dec"
	sweepHTML, sweepPlot = "", ""
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--no-color", "--env", filepath.Join(t.TempDir(), "none.env")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	demo := filepath.Join(dir, "demo.cir")
	if err := os.WriteFile(demo, []byte(`
add V1 V 220
add B1 B 220 50
add R1 R 100
add R2 R 100
connect R1 R2 parallel as G1
run
undo
run
`), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain []string
	}{
		{
			name:        "series resistor",
			args:        []string{"run", "R=100"},
			wantContain: []string{"仿真结果", "NORMAL", "(82.2%)"},
		},
		{
			name:        "over voltage",
			args:        []string{"run", "R=100", "--voltage", "600"},
			wantContain: []string{"BURNT"},
		},
		{
			name:        "parallel group",
			args:        []string{"run", "R=100", "R=100", "--group", "parallel", "-v"},
			wantContain: []string{"1.018k", "(90.4%)", "Group"},
		},
		{
			name:        "numbered names",
			args:        []string{"run", "R1=100", "r2=100", "--group", "parallel"},
			wantContain: []string{"1.018k", "(90.4%)"},
		},
		{
			name:    "unknown type",
			args:    []string{"run", "X=1"},
			wantErr: true,
		},
		{
			name:    "bad coupling",
			args:    []string{"run", "R=1", "--coupling", "mesh"},
			wantErr: true,
		},
		{
			name:        "sweep",
			args:        []string{"sweep", "L=0.1", "C=10u", "--start", "10", "--stop", "1k"},
			wantContain: []string{"峰值", "NORMAL", "WEAK"},
		},
		{
			name:        "script",
			args:        []string{"script", demo},
			wantContain: []string{"(90.4%)", "1.168k"},
		},
		{
			name:    "missing script",
			args:    []string{"script", filepath.Join(dir, "missing.cir")},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v\n%s", err, tt.wantErr, out)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(out, want) {
					t.Errorf("输出缺少 %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestSweepOutputs(t *testing.T) {
	dir := t.TempDir()
	html := filepath.Join(dir, "sweep.html")
	img := filepath.Join(dir, "sweep.svg")
	if _, err := execute(t, "sweep", "R=100", "C=1u", "--html", html, "--plot", img); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{html, img} {
		info, err := os.Stat(f)
		if err != nil {
			t.Fatal(err)
		}
		if info.Size() == 0 {
			t.Errorf("%s 为空", f)
		}
	}
}
