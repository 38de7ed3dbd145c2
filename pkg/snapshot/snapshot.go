// Package snapshot compares test values against JSON files kept in testdata
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

var (
	lock  sync.Mutex
	calls = make(map[string]int)
)

// TestingT is the part of *testing.T used by Validate
type TestingT interface {
	require.TestingT
	Helper()
	Name() string
}

// Validate compares obj, encoded as JSON, with testdata/<test name>-<call>.json
// A missing snapshot is written and the check passes
func Validate(t TestingT, obj interface{}) {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")

	lock.Lock()
	call := calls[name]
	calls[name] = call + 1
	lock.Unlock()

	filename := filepath.Join("testdata", fmt.Sprintf("%s-%d.json", name, call))

	actual, err := json.MarshalIndent(obj, "", "  ")
	require.NoError(t, err)

	expects, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		write(t, filename, actual)
		return
	}

	require.NoError(t, err)

	var want, got interface{}
	require.NoError(t, json.Unmarshal(expects, &want), filename)
	require.NoError(t, json.Unmarshal(actual, &got))

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("snapshot %s mismatch (-want +got):\n%s", filename, diff)
	}
}

func write(t TestingT, filename string, data []byte) {
	t.Helper()

	logrus.WithField("filename", filename).Info("writing snapshot file")
	require.NoError(t, os.MkdirAll(filepath.Dir(filename), 0755))
	require.NoError(t, os.WriteFile(filename, append(data, '\n'), 0644))
}
