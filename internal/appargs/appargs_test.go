package appargs

import (
	"flag"
	"testing"

	"github.com/urfave/cli"
)

func runValidate(t *testing.T, args []string, vs ...Validator) error {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	if err := set.Parse(args); err != nil {
		t.Fatalf("failed to parse arguments: %s", err)
	}
	return Validate(vs...)(cli.NewContext(nil, set, nil))
}

func TestValidateExact(t *testing.T) {
	if err := runValidate(t, []string{"a", "b"}, NonEmptyString, NonEmptyString); err != nil {
		t.Errorf("valid arguments rejected: %s", err)
	}
}

func TestValidateMissing(t *testing.T) {
	if err := runValidate(t, []string{"a"}, NonEmptyString, NonEmptyString); err == nil {
		t.Error("missing argument accepted")
	}
}

func TestValidateEmptyString(t *testing.T) {
	if err := runValidate(t, []string{""}, NonEmptyString); err == nil {
		t.Error("empty argument accepted")
	}
}

func TestValidateExtra(t *testing.T) {
	if err := runValidate(t, []string{"a", "b"}, NonEmptyString); err == nil {
		t.Error("extra argument accepted")
	}
}

func TestValidateOptional(t *testing.T) {
	if err := runValidate(t, []string{"a"}, NonEmptyString, Optional(String)); err != nil {
		t.Errorf("omitted optional argument rejected: %s", err)
	}
	if err := runValidate(t, []string{"a", "b"}, NonEmptyString, Optional(String)); err != nil {
		t.Errorf("supplied optional argument rejected: %s", err)
	}
}
