package cli

import (
	"github.com/spf13/pflag"

	"github.com/jmylchreest/paleta/internal/colour"
)

// accuracyValue is a pflag.Value for the accuracy selector. It accepts a
// label (high, medium, low) or a selector index.
type accuracyValue struct {
	acc colour.Accuracy
}

var _ pflag.Value = (*accuracyValue)(nil)

func newAccuracyValue(def colour.Accuracy) *accuracyValue {
	return &accuracyValue{acc: def}
}

func (v *accuracyValue) String() string {
	return v.acc.String()
}

func (v *accuracyValue) Set(s string) error {
	acc, err := colour.ParseAccuracy(s)
	if err != nil {
		return err
	}
	v.acc = acc
	return nil
}

func (v *accuracyValue) Type() string {
	return "accuracy"
}
