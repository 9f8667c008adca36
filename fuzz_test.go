package ffigen

import (
	"strings"
	"testing"
)

func FuzzRewriteFile(f *testing.F) {
	// Seed corpus
	f.Add(`#[ffi(abi = "C", name = "host_alloc")]
pub fn alloc(size: usize) -> i32 { return 0; }`)
	f.Add(`#[ffi(abi = "stdcall")]
fn external_routine(code: i32);`)
	f.Add(`prose before

#[inline]
#[ffi(feature = "accel")]
fn fast() { return; }

prose after`)
	f.Add(`no annotations at all`)
	f.Add(`#[ffi(abi = "Pascal")]
fn f();`)
	f.Add(`#[ffi(abi = "C"`)
	f.Add(``)

	f.Fuzz(func(t *testing.T, src string) {
		out, err := RewriteFile([]byte(src))
		if err != nil {
			if out != nil {
				t.Error("failed rewrite produced output")
			}
			return
		}
		bindings, err := Scan(src)
		if err != nil {
			t.Fatalf("RewriteFile succeeded but Scan failed: %v", err)
		}
		if len(bindings) == 0 && string(out) != src {
			t.Error("buffer without bindings was modified")
		}
		// Text before the first binding survives byte for byte.
		if len(bindings) > 0 {
			prefix := src[:bindings[0].Start]
			if !strings.HasPrefix(string(out), prefix) {
				t.Errorf("leading text changed: %q", out)
			}
		}
	})
}
