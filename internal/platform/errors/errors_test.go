package errors

import (
	stderrs "errors"
	"fmt"
	"testing"
)

func TestNewAndCode(t *testing.T) {
	err := New(ErrorCodeUnavailable, "remote down")
	if err.Error() != "remote down" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if CodeOf(err) != ErrorCodeUnavailable {
		t.Fatalf("CodeOf = %d", CodeOf(err))
	}
	if !IsCode(err, ErrorCodeUnavailable) {
		t.Fatalf("IsCode should match")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrs.New("connection reset")
	err := Wrapf(cause, ErrorCodeUnavailable, "fetch posts")
	if got := err.Error(); got != "fetch posts: connection reset" {
		t.Fatalf("Error() = %q", got)
	}
	if !stderrs.Is(err, cause) {
		t.Fatalf("wrapped cause lost")
	}
	if Root(err) != cause {
		t.Fatalf("Root should return the deepest cause")
	}
}

func TestCodeOfForeignError(t *testing.T) {
	if CodeOf(fmt.Errorf("plain")) != ErrorCodeUnknown {
		t.Fatalf("foreign errors default to Unknown")
	}
	if CodeOf(nil) != ErrorCodeUnknown {
		t.Fatalf("nil defaults to Unknown")
	}
}

func TestWithOp(t *testing.T) {
	err := Decodef("bad json")
	tagged := WithOp(err, "ListNewPosts")
	e, ok := As(tagged)
	if !ok || e.Op() != "ListNewPosts" {
		t.Fatalf("WithOp not applied: %+v", tagged)
	}
	// copy-on-write: original untouched
	orig, _ := As(err)
	if orig.Op() != "" {
		t.Fatalf("original mutated")
	}
	// foreign error passes through unchanged
	foreign := fmt.Errorf("x")
	if WithOp(foreign, "op") != foreign {
		t.Fatalf("foreign error should pass through")
	}
}

func TestWrapIf(t *testing.T) {
	if WrapIf(nil, ErrorCodeDecode, "x") != nil {
		t.Fatalf("WrapIf(nil) should be nil")
	}
	if CodeOf(WrapIf(fmt.Errorf("y"), ErrorCodeDecode, "x")) != ErrorCodeDecode {
		t.Fatalf("WrapIf should wrap non-nil")
	}
}

func TestTransient(t *testing.T) {
	if !Transient(Unavailablef("timeout")) {
		t.Fatalf("Unavailable is transient")
	}
	for _, err := range []error{
		Decodef("bad payload"),
		InvalidArgf("bad arg"),
		Validationf("bad record"),
		InsufficientPopulationf("pool of 3"),
		BudgetExhaustedf("spent"),
	} {
		if Transient(err) {
			t.Fatalf("%v should not be transient", err)
		}
	}
}

func TestSugarCodes(t *testing.T) {
	cases := []struct {
		err  error
		code ErrorCode
	}{
		{Unavailablef("a"), ErrorCodeUnavailable},
		{Decodef("b"), ErrorCodeDecode},
		{InvalidArgf("c"), ErrorCodeInvalidArgument},
		{Validationf("d"), ErrorCodeValidation},
		{InsufficientPopulationf("e"), ErrorCodeInsufficientPopulation},
		{BudgetExhaustedf("f"), ErrorCodeBudgetExhausted},
		{PanicErrf("g"), ErrorCodePanic},
		{Internalf("h"), ErrorCodeUnknown},
	}
	for _, tc := range cases {
		if CodeOf(tc.err) != tc.code {
			t.Fatalf("CodeOf(%v) = %d, want %d", tc.err, CodeOf(tc.err), tc.code)
		}
	}
}
