package api

import (
	"net/http"

	"github.com/nbonventre/pickaxe/internal/diffparse"
	"github.com/nbonventre/pickaxe/internal/formatter"
	"github.com/nbonventre/pickaxe/internal/planmodel"
	"github.com/nbonventre/pickaxe/internal/stageexec"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Parse ---

type parseRequest struct {
	Diff string `json:"diff"`
}

type parseResponse struct {
	Files []fileJSON `json:"files"`
	Hunks []hunkJSON `json:"hunks"`
}

type fileJSON struct {
	Path      string `json:"path"`
	IsNew     bool   `json:"is_new,omitempty"`
	IsDeleted bool   `json:"is_deleted,omitempty"`
	IsRenamed bool   `json:"is_renamed,omitempty"`
	HunkCount int    `json:"hunk_count"`
}

type hunkJSON struct {
	ID       string `json:"id"`
	File     string `json:"file"`
	OldStart int    `json:"old_start"`
	OldCount int    `json:"old_count"`
	NewStart int    `json:"new_start"`
	NewCount int    `json:"new_count"`
	Complexity int  `json:"complexity"`
	Categories []string `json:"categories,omitempty"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.Diff == "" {
		writeError(w, http.StatusBadRequest, "diff is required")
		return
	}

	d := diffparse.Parse(req.Diff)

	resp := parseResponse{}
	for _, f := range d.Files {
		resp.Files = append(resp.Files, fileJSON{
			Path:      f.Path(),
			IsNew:     f.IsNew,
			IsDeleted: f.IsDeleted,
			IsRenamed: f.IsRenamed,
			HunkCount: len(f.Hunks),
		})
	}
	for _, h := range d.GetAllHunks() {
		resp.Hunks = append(resp.Hunks, hunkJSON{
			ID:         h.ID,
			File:       h.File,
			OldStart:   h.OldStart,
			OldCount:   h.OldCount,
			NewStart:   h.NewStart,
			NewCount:   h.NewCount,
			Complexity: formatter.ComplexityHint(h),
			Categories: formatter.CategoryTags(h),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// --- Render ---

type renderRequest struct {
	Diff string `json:"diff"`
	Mode string `json:"mode"` // "compact", "detailed", "scaffold"
}

type renderResponse struct {
	Text string `json:"text"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.Diff == "" {
		writeError(w, http.StatusBadRequest, "diff is required")
		return
	}

	d := diffparse.Parse(req.Diff)

	var text string
	switch req.Mode {
	case "detailed":
		text = formatter.DetailedReport(d)
	case "scaffold", "":
		text = formatter.PlanScaffold(d)
	case "compact":
		text = formatter.CompactTable(d)
	default:
		writeError(w, http.StatusBadRequest, "unknown mode: "+req.Mode)
		return
	}

	writeJSON(w, http.StatusOK, renderResponse{Text: text})
}

// --- Plan execute ---

type planExecuteRequest struct {
	Diff string `json:"diff"`
	Plan string `json:"plan"` // plan-document text
}

type planExecuteResponse struct {
	Success            bool     `json:"success"`
	StagedHunks        []string `json:"staged_hunks"`
	Error              string   `json:"error,omitempty"`
	CompensatedFiles   []string `json:"compensated_files,omitempty"`
	CompensationError  string   `json:"compensation_error,omitempty"`
}

func (s *Server) handlePlanExecute(w http.ResponseWriter, r *http.Request) {
	var req planExecuteRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.Diff == "" || req.Plan == "" {
		writeError(w, http.StatusBadRequest, "diff and plan are required")
		return
	}
	if s.vc == nil {
		writeError(w, http.StatusServiceUnavailable, "no VCS collaborator configured")
		return
	}

	d := diffparse.Parse(req.Diff)
	plan := planmodel.ParseDocument(req.Plan)

	result := stageexec.Run(r.Context(), s.vc, plan, d)
	resp := planExecuteResponse{
		Success:     result.Success,
		StagedHunks: result.StagedHunks,
		Error:       result.Error,
	}

	if result.Success && len(plan.Compensations) > 0 {
		changed, err := stageexec.ApplyCompensations(r.Context(), s.vc, s.repoDir, plan.Compensations)
		resp.CompensatedFiles = changed
		if err != nil {
			resp.CompensationError = err.Error()
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
