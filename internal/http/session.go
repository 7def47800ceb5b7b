package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lexhover/lexhover/internal/router"
	"github.com/lexhover/lexhover/internal/session"
)

// SessionController exposes the interaction state owned by the
// coordinator: the debounced selection pipeline, the hover state machine
// and the side-panel suppression window.
type SessionController struct {
	hover     *session.HoverSession
	selection *session.SelectionPipeline
	router    *router.Router
}

func NewSessionController(hover *session.HoverSession, selection *session.SelectionPipeline, rt *router.Router) *SessionController {
	return &SessionController{
		hover:     hover,
		selection: selection,
		router:    rt,
	}
}

type selectionRequest struct {
	Text string `json:"text"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// PostSelection handles POST /api/selection, one raw selection-change
// event. The pipeline debounces; the caller gets an immediate ack.
func (sc *SessionController) PostSelection(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid selection event: "+err.Error())
		return
	}
	sc.selection.SelectionChanged(req.Text, req.X, req.Y)
	respondAccepted(c, "selection recorded", nil)
}

type hoverView struct {
	OriginalText string `json:"originalText"`
	Translation  any    `json:"translation,omitempty"`
	Phonetic     any    `json:"phonetic,omitempty"`
	Error        string `json:"error,omitempty"`
}

// GetHover handles GET /api/hover with the current overlay state.
func (sc *SessionController) GetHover(c *gin.Context) {
	view := sc.hover.CurrentView()
	out := hoverView{OriginalText: view.OriginalText}
	if view.Translation != nil {
		out.Translation = view.Translation
	}
	if view.Phonetic != nil {
		out.Phonetic = view.Phonetic
	}
	if view.Err != nil {
		out.Error = view.Err.Error()
	}
	c.JSON(http.StatusOK, gin.H{
		"state":       sc.hover.State(),
		"panelActive": sc.hover.PanelActive(),
		"view":        out,
	})
}

// DismissHover handles POST /api/hover/dismiss.
func (sc *SessionController) DismissHover(c *gin.Context) {
	sc.hover.Dismiss()
	respondSuccess(c, "hover dismissed")
}

// FavoriteHover handles POST /api/hover/favorite, saving the displayed
// pair into the vocabulary.
func (sc *SessionController) FavoriteHover(c *gin.Context) {
	if !sc.hover.Favorite() {
		c.JSON(http.StatusConflict, ErrorResponse{
			Error: "no displayed translation to favorite",
			Code:  "nothing_displayed",
		})
		return
	}
	respondSuccess(c, "favorited")
}

// PanelOpen handles POST /api/panel/open, routed through the message
// router so the suppression window and the broadcast both fire.
func (sc *SessionController) PanelOpen(c *gin.Context) {
	msg, err := router.NewMessage(router.ActionSidePanelOpen, nil)
	if err != nil {
		respondInternalError(c, err, "panel open")
		return
	}
	c.JSON(http.StatusOK, sc.router.Dispatch(c.Request.Context(), msg))
}
