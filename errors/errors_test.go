package errors

import (
	stdlib "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestCause(t *testing.T) {
	std := stdlib.New("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root error
	}{
		"Errors are self-causing": {
			err:  ErrNotFound,
			root: ErrNotFound,
		},
		"Wrap reveals root cause": {
			err:  Wrap(ErrNotFound, "foo"),
			root: ErrNotFound,
		},
		"Cause works for stderr as root": {
			err:  Wrap(std, "Some helpful text"),
			root: std,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatal("unexpected result")
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrModel,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"deeply wrapped error": {
			a:      ErrDenied,
			b:      Wrap(Wrapf(ErrDenied, "gate %q", "whitelist"), "transfer"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrOverflow, "too big"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is not an error": {
			a:      nil,
			b:      ErrExpired,
			wantIs: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result - got:%v want: %v", got, tc.wantIs)
			}
		})
	}
}

func TestRegisterDuplicatedCode(t *testing.T) {
	assert.Panics(t, func() {
		Register(ErrNotFound.ABCICode(), "reused code")
	})
}

func TestCode(t *testing.T) {
	assert.Equal(t, uint32(0), Code(nil))
	assert.Equal(t, ErrExpired.ABCICode(), Code(Wrap(ErrExpired, "take")))
	assert.Equal(t, uint32(1), Code(fmt.Errorf("stdlib")))
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := run()
	assert.True(t, ErrPanic.Is(err))
	assert.Equal(t, ErrPanic, Redact(err))
	assert.Equal(t, ErrExpired, Redact(ErrExpired))
}

func TestStackTrace(t *testing.T) {
	err := Wrap(fmt.Errorf("indirect"), "do the do")
	assert.Equal(t, "do the do: indirect", err.Error())
	assert.NotNil(t, stackTrace(err))

	full := fmt.Sprintf("%+v", err)
	if !strings.Contains(full, "errors_test.go") {
		t.Logf("Stack trace below\n----%s\n----", full)
		t.Error("full stack trace should contain this test source code information")
	}
}
