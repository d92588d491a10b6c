package oneway_test

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/onewaylang/oneway"
	"github.com/onewaylang/oneway/testutils"
)

// A scriptCase is one fixture from testdata/scripts.yaml: a complete
// program with its expected observable behavior.
type scriptCase struct {
	Name      string `yaml:"name"`
	Source    string `yaml:"source"`
	Input     string `yaml:"input"`
	Output    string `yaml:"output"`
	Exception string `yaml:"exception"`
	LoadError string `yaml:"loadError"`
}

func TestScripts(t *testing.T) {
	raw, err := os.ReadFile("testdata/scripts.yaml")
	require.NoError(t, err)
	var cases []scriptCase
	require.NoError(t, yaml.Unmarshal(raw, &cases))
	require.NotEmpty(t, cases)

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			vm := testutils.NewVM(c.Input)
			err := vm.RunString(c.Source)
			switch {
			case c.LoadError != "":
				var le *oneway.Error
				require.True(t, errors.As(err, &le), "want load error, got %v", err)
				assert.Equal(t, c.LoadError, le.Name)
				assert.Zero(t, vm.Out.Len(), "nothing may execute on a load error")
			case c.Exception != "":
				var ex *oneway.Exception
				require.True(t, errors.As(err, &ex), "want exception, got %v", err)
				assert.Equal(t, c.Exception, ex.Name)
			default:
				require.NoError(t, err)
				assert.Equal(t, c.Output, vm.Out.String())
			}
		})
	}
}
