// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestExitCodeValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     ExitCode
		wantValid bool
	}{
		{name: "zero is valid", value: 0, wantValid: true},
		{name: "nothing to pack is valid", value: ExitNothingToPack, wantValid: true},
		{name: "255 is valid", value: 255, wantValid: true},
		{name: "negative is invalid", value: -1, wantValid: false},
		{name: "256 is invalid", value: 256, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.value.Validate()
			if (err == nil) != tt.wantValid {
				t.Errorf("ExitCode(%d).Validate() error = %v, wantValid %v", tt.value, err, tt.wantValid)
			}
			if !tt.wantValid && !errors.Is(err, ErrInvalidExitCode) {
				t.Errorf("error does not wrap ErrInvalidExitCode: %v", err)
			}
		})
	}
}

func TestExitCodesAreStable(t *testing.T) {
	t.Parallel()

	// Scripts depend on these exact numbers.
	want := map[ExitCode]int{
		ExitSuccess:       0,
		ExitInvocation:    1,
		ExitAccess:        2,
		ExitPack:          3,
		ExitMetadata:      4,
		ExitOutput:        5,
		ExitNothingToPack: 6,
	}
	for code, n := range want {
		if int(code) != n {
			t.Errorf("%s = %d, want %d", code.Describe(), int(code), n)
		}
	}
}

func TestExitCodeDescribe(t *testing.T) {
	t.Parallel()

	if got := ExitPack.Describe(); got != "pack failure" {
		t.Errorf("ExitPack.Describe() = %q", got)
	}
	if got := ExitCode(42).Describe(); got != "exit status 42" {
		t.Errorf("ExitCode(42).Describe() = %q", got)
	}
}
