package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nbonventre/pickaxe/internal/diffparse"
	"github.com/nbonventre/pickaxe/internal/formatter"
	"github.com/nbonventre/pickaxe/internal/vcs"
)

const testDiff = `diff --git a/main.go b/main.go
--- a/main.go
+++ b/main.go
@@ -1,4 +1,5 @@
 package main

 func main() {
-	println("hello")
+	println("hello world")
+	println("goodbye")
 }
diff --git a/util.go b/util.go
new file mode 100644
--- /dev/null
+++ b/util.go
@@ -0,0 +1,5 @@
+package main
+
+func add(a, b int) int {
+	return a + b
+}
`

// fakeVC is a no-op Collaborator stand-in for handler tests that exercise
// HTTP plumbing rather than real staging.
type fakeVC struct{}

func (fakeVC) GetUnstagedDiff(context.Context) (string, error)      { return testDiff, nil }
func (fakeVC) GetStagedDiff(context.Context) (string, error)        { return "", nil }
func (fakeVC) GetDiffWithContext(context.Context, int) (string, error) { return "", nil }
// newFileRejection is the error real git apply reports when a patch
// touches util.go (marked "new file mode" in testDiff) without itself
// carrying that header — i.e. when the handler fails to route a new file's
// hunk through ApplyPatchWithRecount and sends it to ApplyPatchToIndex
// with only a modification-style header.
const newFileRejection = "fatal: util.go: does not exist in index"

func (fakeVC) CheckPatch(_ context.Context, patch string) vcs.CheckResult {
	if strings.Contains(patch, "util.go") && !strings.Contains(patch, "new file mode") {
		return vcs.CheckResult{Applies: false, Error: newFileRejection}
	}
	return vcs.CheckResult{Applies: true}
}
func (fakeVC) ApplyPatchToIndex(_ context.Context, patch string) vcs.PatchResult {
	if strings.Contains(patch, "util.go") && !strings.Contains(patch, "new file mode") {
		return vcs.PatchResult{Success: false, Error: newFileRejection}
	}
	return vcs.PatchResult{Success: true}
}
func (fakeVC) ApplyPatchWithRecount(context.Context, string) vcs.PatchResult {
	return vcs.PatchResult{Success: true}
}
func (fakeVC) ReversePatch(context.Context, string) vcs.PatchResult {
	return vcs.PatchResult{Success: true}
}
func (fakeVC) ResetStaging(context.Context) error               { return nil }
func (fakeVC) GetStagedFiles(context.Context) ([]string, error) { return nil, nil }
func (fakeVC) Commit(context.Context, string) vcs.CommitResult {
	return vcs.CommitResult{Success: true, Hash: "deadbeef"}
}
func (fakeVC) GetStatus(context.Context) (string, error) { return "", nil }

func newTestServer() *Server {
	return New(":0", "", fakeVC{})
}

// handlerScaffold builds a real plan-document scaffold for diff, the same
// way a client of /api/render would before posting it back to
// /api/plan/execute.
func handlerScaffold(t *testing.T, diff string) string {
	t.Helper()
	return formatter.PlanScaffold(diffparse.Parse(diff))
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %q", resp["status"])
	}
}

func TestParseEndpoint(t *testing.T) {
	srv := newTestServer()
	body, _ := json.Marshal(parseRequest{Diff: testDiff})
	req := httptest.NewRequest(http.MethodPost, "/api/parse", bytes.NewReader(body))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp parseResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if len(resp.Files) != 2 {
		t.Errorf("expected 2 files, got %d", len(resp.Files))
	}
	if len(resp.Hunks) != 2 {
		t.Errorf("expected 2 hunks, got %d", len(resp.Hunks))
	}
}

func TestParseEndpoint_MissingDiffIsBadRequest(t *testing.T) {
	srv := newTestServer()
	body, _ := json.Marshal(parseRequest{Diff: ""})
	req := httptest.NewRequest(http.MethodPost, "/api/parse", bytes.NewReader(body))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRenderEndpoint_ScaffoldIsDefault(t *testing.T) {
	srv := newTestServer()
	body, _ := json.Marshal(renderRequest{Diff: testDiff})
	req := httptest.NewRequest(http.MethodPost, "/api/render", bytes.NewReader(body))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp renderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if resp.Text == "" {
		t.Errorf("expected non-empty rendered text")
	}
}

func TestRenderEndpoint_UnknownModeIsBadRequest(t *testing.T) {
	srv := newTestServer()
	body, _ := json.Marshal(renderRequest{Diff: testDiff, Mode: "nonsense"})
	req := httptest.NewRequest(http.MethodPost, "/api/render", bytes.NewReader(body))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestPlanExecuteEndpoint_RunsAgainstCollaborator(t *testing.T) {
	srv := newTestServer()

	scaffold := handlerScaffold(t, testDiff)
	body, _ := json.Marshal(planExecuteRequest{Diff: testDiff, Plan: scaffold})
	req := httptest.NewRequest(http.MethodPost, "/api/plan/execute", bytes.NewReader(body))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp planExecuteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if !resp.Success {
		t.Errorf("expected success, got error %q", resp.Error)
	}
	if len(resp.StagedHunks) != 2 {
		t.Errorf("expected 2 staged hunks, got %v", resp.StagedHunks)
	}
}

func TestPlanExecuteEndpoint_NoCollaboratorIsUnavailable(t *testing.T) {
	srv := New(":0", "", nil)
	scaffold := handlerScaffold(t, testDiff)
	body, _ := json.Marshal(planExecuteRequest{Diff: testDiff, Plan: scaffold})
	req := httptest.NewRequest(http.MethodPost, "/api/plan/execute", bytes.NewReader(body))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}
