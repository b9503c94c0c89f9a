package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/nbonventre/pickaxe/internal/diffparse"
	"github.com/nbonventre/pickaxe/internal/formatter"
	"github.com/nbonventre/pickaxe/internal/model"
	"github.com/nbonventre/pickaxe/internal/planmodel"
	"github.com/nbonventre/pickaxe/internal/stageexec"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 64,
	WriteBufferSize: 1024 * 64,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local dev; restrict in production
	},
}

// WebSocket message types from client.
const (
	wsMsgLoadDiff    = "load_diff"
	wsMsgSetMode     = "set_mode"
	wsMsgSetLine     = "set_line"
	wsMsgSetMessage  = "set_message"
	wsMsgExecute     = "execute"
)

// WebSocket message types to client.
const (
	wsMsgParsed  = "parsed"
	wsMsgPlan    = "plan"
	wsMsgResult  = "result"
	wsMsgError   = "error"
)

type wsMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type wsLoadDiff struct {
	Diff string `json:"diff"`
}

type wsSetMode struct {
	HunkID string `json:"hunk_id"`
	Mode   string `json:"mode"` // "none", "all", "partial"
}

type wsSetLine struct {
	HunkID  string `json:"hunk_id"`
	Index   int    `json:"index"`
	Include bool   `json:"include"`
}

type wsSetMessage struct {
	CommitMessage string `json:"commit_message"`
}

type wsParsedResponse struct {
	Hunks []hunkJSON `json:"hunks"`
}

type wsPlanResponse struct {
	Document string `json:"document"`
}

type wsResultResponse struct {
	Success     bool     `json:"success"`
	StagedHunks []string `json:"staged_hunks"`
	Error       string   `json:"error,omitempty"`
}

// planSession holds the state for one WebSocket plan-building session.
type planSession struct {
	diff *diffparse.ParsedDiff
	plan *planmodel.StagingPlan
	sel  map[string]*planmodel.HunkSelection
}

func newPlanSession(d *diffparse.ParsedDiff) *planSession {
	sel := make(map[string]*planmodel.HunkSelection, len(d.GetAllHunks()))
	plan := &planmodel.StagingPlan{CommitMessage: "untitled commit"}
	for _, h := range d.GetAllHunks() {
		s := &planmodel.HunkSelection{HunkID: h.ID, Mode: model.None}
		sel[h.ID] = s
		plan.Selections = append(plan.Selections, *s)
	}
	return &planSession{diff: d, plan: plan, sel: sel}
}

func (ps *planSession) rebuildSelections() {
	ps.plan.Selections = ps.plan.Selections[:0]
	for _, h := range ps.diff.GetAllHunks() {
		ps.plan.Selections = append(ps.plan.Selections, *ps.sel[h.ID])
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	var session *planSession

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket read: %v", err)
			}
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			sendWSError(conn, "invalid message format")
			continue
		}

		switch msg.Type {
		case wsMsgLoadDiff:
			session = handleWSLoadDiff(conn, msg.Data)
		case wsMsgSetMode:
			handleWSSetMode(conn, session, msg.Data)
		case wsMsgSetLine:
			handleWSSetLine(conn, session, msg.Data)
		case wsMsgSetMessage:
			handleWSSetMessage(conn, session, msg.Data)
		case wsMsgExecute:
			handleWSExecute(r.Context(), conn, s, session)

		default:
			sendWSError(conn, "unknown message type: "+msg.Type)
		}
	}
}

func handleWSLoadDiff(conn *websocket.Conn, data json.RawMessage) *planSession {
	var req wsLoadDiff
	if err := json.Unmarshal(data, &req); err != nil {
		sendWSError(conn, "invalid load_diff data")
		return nil
	}

	d := diffparse.Parse(req.Diff)
	session := newPlanSession(d)

	var resp wsParsedResponse
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
	sendWSMessage(conn, wsMsgParsed, resp)
	sendWSPlanDocument(conn, session)
	return session
}

func handleWSSetMode(conn *websocket.Conn, session *planSession, data json.RawMessage) {
	if session == nil {
		sendWSError(conn, "no diff loaded")
		return
	}
	var req wsSetMode
	if err := json.Unmarshal(data, &req); err != nil {
		sendWSError(conn, "invalid set_mode data")
		return
	}
	sel, ok := session.sel[req.HunkID]
	if !ok {
		sendWSError(conn, "Hunk not found: "+req.HunkID)
		return
	}
	switch req.Mode {
	case "none":
		sel.Mode = model.None
	case "all":
		sel.Mode = model.All
	case "partial":
		sel.Mode = model.Partial
		if sel.IncludeAdditions == nil {
			sel.IncludeAdditions = map[int]bool{}
		}
		if sel.IncludeRemovals == nil {
			sel.IncludeRemovals = map[int]bool{}
		}
	default:
		sendWSError(conn, "unknown mode: "+req.Mode)
		return
	}
	session.rebuildSelections()
	sendWSPlanDocument(conn, session)
}

func handleWSSetLine(conn *websocket.Conn, session *planSession, data json.RawMessage) {
	if session == nil {
		sendWSError(conn, "no diff loaded")
		return
	}
	var req wsSetLine
	if err := json.Unmarshal(data, &req); err != nil {
		sendWSError(conn, "invalid set_line data")
		return
	}
	sel, ok := session.sel[req.HunkID]
	if !ok {
		sendWSError(conn, "Hunk not found: "+req.HunkID)
		return
	}
	h := session.diff.GetHunk(req.HunkID)
	if h == nil || req.Index < 0 || req.Index >= len(h.Lines) {
		sendWSError(conn, "line index out of range")
		return
	}
	if sel.Mode != model.Partial {
		sendWSError(conn, "hunk is not in partial mode")
		return
	}
	switch h.Lines[req.Index].Kind {
	case model.Add:
		sel.IncludeAdditions[req.Index] = req.Include
	case model.Remove:
		sel.IncludeRemovals[req.Index] = req.Include
	}
	session.rebuildSelections()
	sendWSPlanDocument(conn, session)
}

func handleWSSetMessage(conn *websocket.Conn, session *planSession, data json.RawMessage) {
	if session == nil {
		sendWSError(conn, "no diff loaded")
		return
	}
	var req wsSetMessage
	if err := json.Unmarshal(data, &req); err != nil {
		sendWSError(conn, "invalid set_message data")
		return
	}
	session.plan.CommitMessage = req.CommitMessage
	sendWSPlanDocument(conn, session)
}

func handleWSExecute(ctx context.Context, conn *websocket.Conn, s *Server, session *planSession) {
	if session == nil {
		sendWSError(conn, "no diff loaded")
		return
	}
	if s.vc == nil {
		sendWSError(conn, "no VCS collaborator configured")
		return
	}
	result := stageexec.Run(ctx, s.vc, session.plan, session.diff)
	sendWSMessage(conn, wsMsgResult, wsResultResponse{
		Success:     result.Success,
		StagedHunks: result.StagedHunks,
		Error:       result.Error,
	})
}

func sendWSPlanDocument(conn *websocket.Conn, session *planSession) {
	doc := planmodel.RenderDocument(session.plan, session.diff)
	sendWSMessage(conn, wsMsgPlan, wsPlanResponse{Document: doc})
}

func sendWSMessage(conn *websocket.Conn, msgType string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		log.Printf("ws marshal: %v", err)
		return
	}
	msg := wsMessage{Type: msgType, Data: raw}
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("ws write: %v", err)
	}
}

func sendWSError(conn *websocket.Conn, errMsg string) {
	sendWSMessage(conn, wsMsgError, map[string]string{"message": errMsg})
}
