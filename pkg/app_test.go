package pkg

import (
	"bytes"
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/slamdev/importtoarray/pkg/integration"
	"github.com/slamdev/importtoarray/testdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is written by the watch goroutine while the test reads it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app, err := NewApp(&out, &errOut)
	require.NoError(t, err)
	testdata.SetTestLogger(t)
	err = app.Run(t.Context(), args)
	return out.String(), err
}

func Test_should_convert_namespace_file(t *testing.T) {
	path := testdata.WriteFile(t, "module.json", `{"__esModule": true, "a": 1, "b": 2}`)

	out, err := runApp(t, "convert", path)
	require.NoError(t, err)
	require.Equal(t, "[1,2]\n", out)
}

func Test_should_print_empty_array_for_marker_only_namespace(t *testing.T) {
	path := testdata.WriteFile(t, "module.yaml", "__foo: x\n__bar: y\n")

	out, err := runApp(t, "convert", path)
	require.NoError(t, err)
	require.Equal(t, "[]\n", out)
}

func Test_should_print_lines_with_custom_prefix(t *testing.T) {
	path := testdata.WriteFile(t, "module.yaml", "__esModule: true\n$meta: 1\nhandler: {name: h}\n")

	out, err := runApp(t, "--format", "lines", "--prefix", "$", "convert", path)
	require.NoError(t, err)
	require.Equal(t, "true\n{\"name\":\"h\"}\n", out)
}

func Test_should_take_defaults_from_env(t *testing.T) {
	t.Setenv("IMPORTTOARRAY_EXPORTS_MARKERPREFIX", "$")
	t.Setenv("IMPORTTOARRAY_EXPORTS_FORMAT", "lines")
	path := testdata.WriteFile(t, "module.yaml", "__esModule: true\n$meta: 1\n")

	out, err := runApp(t, "convert", path)
	require.NoError(t, err)
	require.Equal(t, "true\n", out)
}

func Test_should_convert_nested_mapping_with_numeric_keys(t *testing.T) {
	path := testdata.WriteFile(t, "module.yaml", "__esModule: true\ncodes:\n  404: not found\n")

	out, err := runApp(t, "convert", path)
	require.NoError(t, err)
	require.Equal(t, "[{\"404\":\"not found\"}]\n", out)
}

func Test_should_fail_on_invalid_namespace(t *testing.T) {
	path := testdata.WriteFile(t, "module.yaml", "- a\n- b\n")

	_, err := runApp(t, "convert", path)
	require.Error(t, err)
	require.True(t, integration.IsValidationError(err), err)
}

func Test_should_fail_on_bad_arguments(t *testing.T) {
	_, err := runApp(t, "convert")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse arguments")

	_, err = runApp(t, "--format", "xml", "convert", testdata.WriteFile(t, "m.yaml", "a: 1\n"))
	require.Error(t, err)
}

func Test_should_reprint_on_change(t *testing.T) {
	path := testdata.WriteFile(t, "module.yaml", "__esModule: true\na: 1\n")

	var out syncBuffer
	app, err := NewApp(&out, &bytes.Buffer{})
	require.NoError(t, err)
	testdata.SetTestLogger(t)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() {
		done <- app.Run(ctx, []string{"watch", "--debounce", "50ms", path})
	}()

	testdata.WaitFor(t, func(c *assert.CollectT) (any, error) {
		assert.Equal(c, "[1]\n", out.String())
		return nil, nil //nolint:nilnil
	})

	require.NoError(t, os.WriteFile(path, []byte("__esModule: true\na: 1\nb: 2\n"), 0o600))

	testdata.WaitFor(t, func(c *assert.CollectT) (any, error) {
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		assert.Equal(c, "[1,2]", lines[len(lines)-1])
		return nil, nil //nolint:nilnil
	})

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
