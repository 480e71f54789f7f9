package phewasnet

import (
	"flag"
	"io"
	"testing"
)

func TestFlagTypes(t *testing.T) {
	var inputs FlagSlice
	var maf, pvalue NullFloatFlag

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Var(&inputs, "input", "")
	fs.Var(&maf, "maf", "")
	fs.Var(&pvalue, "pvalue", "")

	if err := fs.Parse([]string{"-input", "a.tsv", "-input", "b.tsv", "-maf", "0"}); err != nil {
		t.Fatal(err)
	}

	if len(inputs) != 2 || inputs[1] != "b.tsv" {
		t.Errorf("Expected two inputs, got %v", inputs)
	}
	if inputs.String() != "a.tsv,b.tsv" {
		t.Errorf("Unexpected string %q", inputs.String())
	}

	// A zero threshold is still a threshold
	if !maf.Valid || maf.Float64 != 0 {
		t.Errorf("Expected a valid zero MAF, got %+v", maf.Float)
	}
	if pvalue.Valid {
		t.Errorf("Expected an unset p-value threshold, got %v", pvalue.Float64)
	}

	if err := fs.Parse([]string{"-pvalue", "abc"}); err == nil {
		t.Error("Expected a parse error for a non-numeric threshold")
	}
}

func TestNullFloatFlagClear(t *testing.T) {
	var f NullFloatFlag
	if err := f.Set("5e-8"); err != nil {
		t.Fatal(err)
	}
	if f.String() != "5e-08" {
		t.Errorf("Unexpected string %q", f.String())
	}

	if err := f.Set(""); err != nil {
		t.Fatal(err)
	}
	if f.Valid {
		t.Error("Expected the empty string to clear the flag")
	}
}
