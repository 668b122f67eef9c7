package cli

import "testing"

func TestLogConfigScan(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want logConfig
	}{
		{
			name: "separate_values",
			args: []string{"parse", "--log-level", "debug", "--log-format", "json", "a"},
			want: logConfig{Level: "debug", Format: "json", Pretty: true},
		},
		{
			name: "assigned_values",
			args: []string{"--log-level=trace", "--log-caller", "--log-pretty=false"},
			want: logConfig{Level: "trace", Caller: true},
		},
		{
			name: "negated_bools",
			args: []string{"--no-log-pretty", "--no-log-caller=false"},
			want: logConfig{Caller: true},
		},
		{
			name: "missing_value_is_not_consumed",
			args: []string{"--log-level", "--log-pretty"},
			want: logConfig{Pretty: true},
		},
		{
			name: "unrelated_flags",
			args: []string{"--default=a,b", "-o", "yaml"},
			want: logConfig{Pretty: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := logConfig{Pretty: true}
			f.scan(tt.args)

			if f != tt.want {
				t.Errorf("scan(%q) = %+v, want %+v", tt.args, f, tt.want)
			}
		})
	}
}
