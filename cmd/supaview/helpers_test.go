package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// executeCommand runs root with args and returns everything written to
// stdout and stderr. A call to exit with a non-zero code is reported as an
// error instead of ending the test binary.
func executeCommand(root *cobra.Command, args ...string) (out string, err error) {
	resetFlags(root)
	oldExit := exit
	exit = func(code int) {
		if code != 0 {
			panic(fmt.Sprintf("exit-%d", code))
		}
	}
	defer func() { exit = oldExit }()

	b := new(bytes.Buffer)
	defer func() {
		if r := recover(); r != nil {
			if s, ok := r.(string); ok && strings.HasPrefix(s, "exit-") {
				out = b.String()
				err = fmt.Errorf("%s", s)
				return
			}
			panic(r) // Re-panic actual panics
		}
	}()

	root.SetArgs(args)
	root.SetOut(b)
	root.SetErr(b)
	root.SetIn(bytes.NewBufferString(""))
	err = root.Execute()
	return b.String(), err
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// isolate moves the test into an empty directory, so no .env or config.yaml
// is picked up, and sets the Supabase variables.
func isolate(t *testing.T, url, key string) {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(cwd) })

	t.Setenv("NEXT_PUBLIC_SUPABASE_URL", url)
	t.Setenv("NEXT_PUBLIC_SUPABASE_ANON_KEY", key)
	for _, name := range []string{"SUPAVIEW_SOURCE", "SUPAVIEW_TABLE", "SUPAVIEW_DATABASE_URL", "SUPAVIEW_ADDR", "SUPAVIEW_LOG_FILE"} {
		t.Setenv(name, "")
	}
	t.Setenv("SUPAVIEW_TIMEZONE", "UTC")
}
