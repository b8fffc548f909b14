package parser

import (
	"testing"

	"csweep/internal/domain"
)

const passingOutput = `   Compiling catr v0.1.0 (/work/catr)
    Finished test profile [unoptimized + debuginfo] target(s) in 1.02s
     Running unittests src/lib.rs (target/debug/deps/catr-1a2b3c)

running 3 tests
test tests::prints_file ... ok
test tests::numbers_lines ... ok
test tests::skips_blank ... ok

test result: ok. 3 passed; 0 failed; 0 ignored; 0 measured; 0 filtered out; finished in 0.01s

     Running tests/cli.rs (target/debug/deps/cli-4d5e6f)

running 2 tests
test usage ... ok
test dies_no_args ... ok

test result: ok. 2 passed; 0 failed; 0 ignored; 0 measured; 0 filtered out; finished in 0.35s
`

const failingOutput = `     Running unittests src/lib.rs (target/debug/deps/headr-9f8e7d)

running 3 tests
test tests::parses_count ... ok
test tests::dies_bad_count ... FAILED
test tests::dies_bad_bytes ... FAILED

failures:

---- tests::dies_bad_count stdout ----
thread 'tests::dies_bad_count' panicked at src/lib.rs:42:9:
assertion failed: res.is_err()
note: run with RUST_BACKTRACE=1 environment variable to display a backtrace

---- tests::dies_bad_bytes stdout ----
thread 'tests::dies_bad_bytes' panicked at src/lib.rs:57:9:
assertion ` + "`left == right`" + ` failed
  left: 2
 right: 3

failures:
    tests::dies_bad_bytes
    tests::dies_bad_count

test result: FAILED. 1 passed; 2 failed; 0 ignored; 0 measured; 0 filtered out; finished in 0.02s
`

const buildErrorOutput = `   Compiling wcr v0.1.0 (/work/wcr)
error[E0308]: mismatched types
  --> src/lib.rs:12:20
   |
12 |     let n: usize = "4";
   |            -----   ^^^ expected ` + "`usize`" + `, found ` + "`&str`" + `
   |
error: could not compile ` + "`wcr`" + ` (lib) due to 1 previous error
`

func result(output string, success bool) domain.ProjectResult {
	return domain.ProjectResult{
		Project: domain.Project{Dir: "/work/proj"},
		Success: success,
		Output:  output,
	}
}

func TestCargoParser_ParseTestCounts(t *testing.T) {
	parser := NewCargoParser()

	t.Run("sums counts across targets", func(t *testing.T) {
		passed, failed := parser.ParseTestCounts(result(passingOutput, true))
		if passed != 5 || failed != 0 {
			t.Errorf("expected 5 passed / 0 failed, got %d / %d", passed, failed)
		}
	})

	t.Run("failing run", func(t *testing.T) {
		passed, failed := parser.ParseTestCounts(result(failingOutput, false))
		if passed != 1 || failed != 2 {
			t.Errorf("expected 1 passed / 2 failed, got %d / %d", passed, failed)
		}
	})

	t.Run("fallback to one per project", func(t *testing.T) {
		passed, failed := parser.ParseTestCounts(result("garbage", true))
		if passed != 1 || failed != 0 {
			t.Errorf("expected 1 / 0 fallback, got %d / %d", passed, failed)
		}
		passed, failed = parser.ParseTestCounts(result("garbage", false))
		if passed != 0 || failed != 1 {
			t.Errorf("expected 0 / 1 fallback, got %d / %d", passed, failed)
		}
	})
}

func TestCargoParser_ParseFailures(t *testing.T) {
	parser := NewCargoParser()

	t.Run("extracts failure sections", func(t *testing.T) {
		failures := parser.ParseFailures(result(failingOutput, false))
		if len(failures) != 2 {
			t.Fatalf("expected 2 failures, got %d", len(failures))
		}

		first := failures[0]
		if first.TestName != "tests::dies_bad_count" {
			t.Errorf("unexpected test name %q", first.TestName)
		}
		if first.ProjectDir != "/work/proj" {
			t.Errorf("unexpected project dir %q", first.ProjectDir)
		}
		if first.Message == "" || len(first.Output) == 0 {
			t.Error("expected message and output to be captured")
		}

		if failures[1].TestName != "tests::dies_bad_bytes" {
			t.Errorf("unexpected test name %q", failures[1].TestName)
		}
	})

	t.Run("compile error collapses to a build failure", func(t *testing.T) {
		failures := parser.ParseFailures(result(buildErrorOutput, false))
		if len(failures) != 1 {
			t.Fatalf("expected 1 failure, got %d", len(failures))
		}
		if failures[0].TestName != "(build)" {
			t.Errorf("expected (build), got %q", failures[0].TestName)
		}
		if failures[0].Message != "error[E0308]: mismatched types" {
			t.Errorf("unexpected message %q", failures[0].Message)
		}
	})

	t.Run("successful result yields nothing", func(t *testing.T) {
		if failures := parser.ParseFailures(result(passingOutput, true)); failures != nil {
			t.Errorf("expected nil, got %d failures", len(failures))
		}
	})

	t.Run("unparseable failure keeps a project-level entry", func(t *testing.T) {
		failures := parser.ParseFailures(result("signal: killed", false))
		if len(failures) != 1 || failures[0].TestName != "(project)" {
			t.Fatalf("expected a single project-level failure, got %+v", failures)
		}
	})
}
