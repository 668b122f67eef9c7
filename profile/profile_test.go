package profile

import "testing"

func TestMake(t *testing.T) {
	p := Make(WithMode("cpu"), nil, WithPath("/tmp/prof"), WithQuiet(true))

	want := Profiler{Mode: "cpu", Path: "/tmp/prof", Quiet: true}
	if p != want {
		t.Errorf("Make() = %+v, want %+v", p, want)
	}
}

func TestStartWithoutMode(t *testing.T) {
	stop := Make(WithPath(t.TempDir())).Start()
	if _, ok := stop.(ignore); !ok {
		t.Errorf("Start() = %T, want no-op", stop)
	}

	stop.Stop()
}
