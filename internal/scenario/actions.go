package scenario

import (
	"fmt"
	"strconv"

	"github.com/northvolt/go-libtock/apis/adc"
	"github.com/northvolt/go-libtock/apis/buzzer"
	"github.com/northvolt/go-libtock/apis/humidity"
	"github.com/northvolt/go-libtock/apis/rng"
	"github.com/northvolt/go-libtock/apis/soundpressure"
	"github.com/northvolt/go-libtock/apis/textscreen"
	"github.com/northvolt/go-libtock/apis/touch"
	"github.com/northvolt/go-libtock/fake"
)

func (s Step) need(n int) error {
	if len(s.Args) < n {
		return fmt.Errorf("%w: %s needs %d, got %d", ErrArgs, s, n, len(s.Args))
	}
	return nil
}

func (s Step) bytes() []byte {
	b := make([]byte, len(s.Args))
	for i, v := range s.Args {
		b[i] = byte(v)
	}
	return b
}

func unknown(s Step) error {
	return fmt.Errorf("%w %q for driver %q", ErrUnknownAction, s.Action, s.Driver)
}

func missing(s Step) error {
	return fmt.Errorf("%w: %s", ErrMissingDriver, s.Driver)
}

func (e *env) do(s Step) (string, error) {
	switch s.Action {
	case "yield_no_wait":
		return e.sys.YieldNoWait().String(), nil
	case "pending":
		return strconv.Itoa(e.k.PendingUpcalls()), nil
	}

	switch s.Driver {
	case "adc":
		return e.doAdc(s)
	case "rng":
		return e.doRng(s)
	case "humidity":
		return e.doSensor(s, e.humidity, humidity.New(e.sys), func() (string, error) {
			v, err := humidity.New(e.sys).ReadSync()
			return strconv.FormatUint(uint64(v), 10), err
		})
	case "soundpressure":
		return e.doSensor(s, e.soundPressure, soundpressure.New(e.sys), func() (string, error) {
			v, err := soundpressure.New(e.sys).ReadSync()
			return strconv.FormatInt(int64(v), 10), err
		})
	case "buzzer":
		return e.doBuzzer(s)
	case "touch":
		return e.doTouch(s)
	case "textscreen":
		return e.doTextScreen(s)
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownDriver, s.Driver)
	}
}

func (e *env) doAdc(s Step) (string, error) {
	c := adc.New(e.sys)
	switch s.Action {
	case "exists":
		return "", c.Exists()
	case "count":
		n, err := c.Count()
		return strconv.FormatUint(uint64(n), 10), err
	}

	if e.adc == nil {
		return "", missing(s)
	}
	switch s.Action {
	case "report":
		if err := s.need(1); err != nil {
			return "", err
		}
		e.adc.Report(int32(s.Args[0]))
		return "", nil
	default:
		return "", unknown(s)
	}
}

func (e *env) doRng(s Step) (string, error) {
	c := rng.New(e.sys)
	switch s.Action {
	case "exists":
		return "", c.Exists()
	case "get_random_sync":
		if err := s.need(1); err != nil {
			return "", err
		}
		n := s.Args[0]
		if len(s.Args) > 1 {
			n = s.Args[1]
		}
		buf := make([]byte, s.Args[0])
		count, err := c.GetRandomSync(buf, uint32(n))
		return strconv.FormatUint(uint64(count), 10), err
	}

	if e.rng == nil {
		return "", missing(s)
	}
	switch s.Action {
	case "add_bytes":
		e.rng.AddBytes(s.bytes())
		return "", nil
	case "add_bytes_sync":
		e.rng.AddBytesSync(s.bytes())
		return "", nil
	case "seed":
		return "", e.rng.Seed([]byte(s.Text))
	default:
		return "", unknown(s)
	}
}

type sensorClient interface {
	Exists() error
	Read() error
}

func (e *env) doSensor(s Step, stub *fake.Sensor, c sensorClient, readSync func() (string, error)) (string, error) {
	switch s.Action {
	case "exists":
		return "", c.Exists()
	case "read":
		return "", c.Read()
	case "read_sync":
		return readSync()
	}

	if stub == nil {
		return "", missing(s)
	}
	switch s.Action {
	case "set_value", "set_value_sync":
		if err := s.need(1); err != nil {
			return "", err
		}
		if s.Action == "set_value" {
			stub.SetValue(int32(s.Args[0]))
		} else {
			stub.SetValueSync(int32(s.Args[0]))
		}
		return "", nil
	case "busy":
		return strconv.FormatBool(stub.IsBusy()), nil
	default:
		return "", unknown(s)
	}
}

func (e *env) doBuzzer(s Step) (string, error) {
	c := buzzer.New(e.sys)
	switch s.Action {
	case "exists":
		return "", c.DriverCheck()
	case "tone", "tone_sync":
		if err := s.need(2); err != nil {
			return "", err
		}
		f, d := uint32(s.Args[0]), uint32(s.Args[1])
		if s.Action == "tone" {
			return "", c.Tone(f, d)
		}
		return "", c.ToneSync(f, d)
	case "play":
		if err := s.need(1); err != nil {
			return "", err
		}
		return "", c.PlaySync(uint32(s.Args[0]), buzzer.OdeToJoy)
	}

	if e.buzzer == nil {
		return "", missing(s)
	}
	switch s.Action {
	case "finish":
		e.buzzer.Finish()
		return "", nil
	case "immediate":
		e.buzzer.SetImmediate(true)
		return "", nil
	case "tones":
		return strconv.Itoa(e.buzzer.Tones()), nil
	default:
		return "", unknown(s)
	}
}

func (e *env) touchPoint(s Step) (fake.TouchPoint, error) {
	if err := s.need(3); err != nil {
		return fake.TouchPoint{}, err
	}
	return fake.TouchPoint{
		Status: uint32(s.Args[0]),
		X:      uint16(s.Args[1]),
		Y:      uint16(s.Args[2]),
	}, nil
}

func (e *env) doTouch(s Step) (string, error) {
	c := touch.New(e.sys)
	switch s.Action {
	case "exists":
		return "", c.Exists()
	case "enable":
		return "", c.EnableSingleTouch()
	case "disable":
		return "", c.DisableSingleTouch()
	case "wait_for_touch":
		ev, err := c.WaitForSingleTouch()
		if err != nil {
			return "", err
		}
		return ev.String(), nil
	}

	if e.touch == nil {
		return "", missing(s)
	}
	switch s.Action {
	case "touch":
		p, err := e.touchPoint(s)
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(e.touch.Touch(p)), nil
	case "touch_on_enable":
		p, err := e.touchPoint(s)
		if err != nil {
			return "", err
		}
		e.touch.TouchOnEnable(p)
		return "", nil
	default:
		return "", unknown(s)
	}
}

func (e *env) doTextScreen(s Step) (string, error) {
	c := textscreen.New(e.sys)
	switch s.Action {
	case "exists":
		return "", c.Exists()
	case "resolution":
		w, h, err := c.Resolution()
		return fmt.Sprintf("%dx%d", w, h), err
	case "write":
		n, err := c.WriteString(s.Text)
		return strconv.Itoa(n), err
	case "clear":
		return "", c.Clear()
	}

	if e.textScreen == nil {
		return "", missing(s)
	}
	switch s.Action {
	case "text":
		return e.textScreen.Text(), nil
	case "defer":
		e.textScreen.Defer()
		return "", nil
	case "complete":
		e.textScreen.Complete()
		return "", nil
	default:
		return "", unknown(s)
	}
}
