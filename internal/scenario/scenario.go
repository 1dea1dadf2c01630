// Package scenario runs scripted driver interactions against the fake kernel.
//
// A scenario is a YAML document naming the drivers to register and a list of
// steps. Each step either pokes a driver stub (the hardware side) or calls a
// driver client (the application side), optionally checking the result:
//
//	drivers: [humidity]
//	steps:
//	  - {driver: humidity, action: set_value_sync, args: [5479]}
//	  - {driver: humidity, action: read_sync, expect: "5479"}
//	  - {driver: humidity, action: read}
//	  - {driver: humidity, action: read, expect: busy}
//
// Blocking client calls only return once the stub answers, so a scenario must
// arrange the answer first, for example with set_value_sync.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/northvolt/go-libtock/fake"
	"github.com/northvolt/go-libtock/platform"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownDriver = errors.New("libtock: scenario: unknown driver")
	ErrUnknownAction = errors.New("libtock: scenario: unknown action")
	ErrMissingDriver = errors.New("libtock: scenario: driver not listed in drivers")
	ErrArgs          = errors.New("libtock: scenario: wrong number of args")
)

// File is a decoded scenario.
type File struct {
	Drivers []string `yaml:"drivers"`
	Steps   []Step   `yaml:"steps"`
}

// Step is a single action.
type Step struct {
	Driver string  `yaml:"driver"`
	Action string  `yaml:"action"`
	Args   []int64 `yaml:"args,omitempty"`
	Text   string  `yaml:"text,omitempty"`

	// Expect is checked against the outcome when set. "ok" expects success,
	// an error code name such as "busy" or "NoDevice" expects that error,
	// anything else is compared with the returned value.
	Expect string `yaml:"expect,omitempty"`
}

func (s Step) String() string {
	if s.Driver == "" {
		return s.Action
	}
	return s.Driver + "." + s.Action
}

// StepResult is the outcome of one step.
type StepResult struct {
	Index int
	Step  Step
	Value string
	Err   error

	// Failure describes the expectation mismatch, if any.
	Failure string
}

// Passed reports whether the step met its expectation.
func (r StepResult) Passed() bool {
	return r.Failure == ""
}

// Report collects the results of a scenario run.
type Report struct {
	Steps []StepResult
}

// Failed returns the number of steps that did not meet their expectation.
func (r *Report) Failed() int {
	n := 0
	for _, s := range r.Steps {
		if !s.Passed() {
			n++
		}
	}
	return n
}

// Err returns an error listing every failed step, or nil.
func (r *Report) Err() error {
	var errs *multierror.Error
	for _, s := range r.Steps {
		if !s.Passed() {
			errs = multierror.Append(errs, fmt.Errorf("step %d (%s): %s", s.Index, s.Step, s.Failure))
		}
	}
	return errs.ErrorOrNil()
}

// Decode reads a scenario from r.
func Decode(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("libtock: scenario: %w", err)
	}
	return &f, nil
}

// Run decodes the scenario in r and runs it against a fresh fake kernel.
//
// Syscalls are traced to log. Expectation mismatches are recorded in the
// report; an error is only returned when the scenario itself is malformed or
// ctx is done.
func Run(ctx context.Context, r io.Reader, log platform.Logger) (*Report, error) {
	f, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return f.Run(ctx, log)
}

// Run runs the scenario against a fresh fake kernel.
func (f *File) Run(ctx context.Context, log platform.Logger) (*Report, error) {
	e, err := newEnv(f.Drivers, log)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for i, step := range f.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		value, err := e.do(step)
		if malformed(err) {
			return report, fmt.Errorf("step %d (%s): %w", i, step, err)
		}
		res := StepResult{Index: i, Step: step, Value: value, Err: err}
		res.Failure = check(step.Expect, value, err)
		e.log.Printf("scenario: step %d %s value=%q err=%v", i, step, value, err)
		report.Steps = append(report.Steps, res)
	}
	return report, nil
}

func malformed(err error) bool {
	for _, target := range []error{ErrUnknownDriver, ErrUnknownAction, ErrMissingDriver, ErrArgs} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func check(expect, value string, err error) string {
	switch {
	case expect == "":
		return ""
	case expect == "ok":
		if err != nil {
			return fmt.Sprintf("got error %v, want success", err)
		}
		return ""
	}
	if code, ok := platform.ParseErrorCode(expect); ok {
		if !errors.Is(err, code) {
			return fmt.Sprintf("got %v, want error %v", describe(value, err), code)
		}
		return ""
	}
	if err != nil || value != expect {
		return fmt.Sprintf("got %v, want %q", describe(value, err), expect)
	}
	return ""
}

func describe(value string, err error) string {
	if err != nil {
		return "error " + err.Error()
	}
	return strconv.Quote(value)
}

// env holds the kernel, stubs and clients of a run.
type env struct {
	log platform.Logger
	k   *fake.Kernel
	sys platform.Syscalls

	adc           *fake.Adc
	rng           *fake.Rng
	humidity      *fake.Sensor
	soundPressure *fake.Sensor
	buzzer        *fake.Buzzer
	touch         *fake.Touch
	textScreen    *fake.TextScreen
}

func newEnv(drivers []string, log platform.Logger) (*env, error) {
	log = platform.LoggerOrNull(log)
	k := fake.NewKernel(fake.KernelConfig{Debug: log})
	e := &env{log: log, k: k, sys: platform.Traced(k, log)}

	for _, name := range drivers {
		var d fake.SyscallDriver
		switch name {
		case "adc":
			e.adc = fake.NewAdc(1)
			d = e.adc
		case "rng":
			e.rng = fake.NewRng()
			d = e.rng
		case "humidity":
			e.humidity = fake.NewHumidity()
			d = e.humidity
		case "soundpressure":
			e.soundPressure = fake.NewSoundPressure()
			d = e.soundPressure
		case "buzzer":
			e.buzzer = fake.NewBuzzer()
			d = e.buzzer
		case "touch":
			e.touch = fake.NewTouch()
			d = e.touch
		case "textscreen":
			e.textScreen = fake.NewTextScreen(16, 2)
			d = e.textScreen
		default:
			return nil, fmt.Errorf("%w %q", ErrUnknownDriver, name)
		}
		if err := k.AddDriver(d); err != nil {
			return nil, fmt.Errorf("libtock: scenario: %s: %w", name, err)
		}
	}
	return e, nil
}
