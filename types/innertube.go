package types

// Wire shapes for the keyless InnerTube endpoint (youtubei/v1/next) used by the
// scraping fallback. Only the fields the fetcher reads are modeled; the real
// responses are far larger.

// InnerTubeRequest is the POST body for youtubei/v1/next.
type InnerTubeRequest struct {
	Context      InnerTubeContext `json:"context"`
	Continuation string           `json:"continuation"`
}

// InnerTubeContext identifies the calling client.
type InnerTubeContext struct {
	Client InnerTubeClient `json:"client"`
}

// InnerTubeClient mimics the web player client.
type InnerTubeClient struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
	HL            string `json:"hl"`
	GL            string `json:"gl"`
}

// InnerTubeResponse is the root of a comment continuation response.
type InnerTubeResponse struct {
	OnResponseReceivedEndpoints []ResponseReceivedEndpoint `json:"onResponseReceivedEndpoints"`
}

// ResponseReceivedEndpoint holds one batch of continuation items. Initial pages
// arrive under reloadContinuationItemsCommand, later pages under
// appendContinuationItemsAction.
type ResponseReceivedEndpoint struct {
	ReloadContinuationItemsCommand *ContinuationItemsAction `json:"reloadContinuationItemsCommand,omitempty"`
	AppendContinuationItemsAction  *ContinuationItemsAction `json:"appendContinuationItemsAction,omitempty"`
}

// ContinuationItemsAction wraps the comment threads of a single page.
type ContinuationItemsAction struct {
	ContinuationItems []ContinuationItem `json:"continuationItems"`
}

// ContinuationItem is either a comment thread or the token for the next page.
type ContinuationItem struct {
	CommentThreadRenderer    *CommentThreadRenderer    `json:"commentThreadRenderer,omitempty"`
	ContinuationItemRenderer *ContinuationItemRenderer `json:"continuationItemRenderer,omitempty"`
}

// CommentThreadRenderer holds a top-level comment (replies are not fetched).
type CommentThreadRenderer struct {
	Comment CommentWrapper `json:"comment"`
}

// CommentWrapper unwraps the renderer indirection around a comment.
type CommentWrapper struct {
	CommentRenderer *CommentRenderer `json:"commentRenderer,omitempty"`
}

// CommentRenderer is one rendered comment.
type CommentRenderer struct {
	CommentID         string   `json:"commentId"`
	AuthorText        TextRuns `json:"authorText"`
	ContentText       TextRuns `json:"contentText"`
	PublishedTimeText TextRuns `json:"publishedTimeText"`
	VoteCount         TextRuns `json:"voteCount"`
}

// ContinuationItemRenderer carries the token for the following page.
type ContinuationItemRenderer struct {
	ContinuationEndpoint ContinuationEndpoint `json:"continuationEndpoint"`
}

// ContinuationEndpoint wraps the continuation command.
type ContinuationEndpoint struct {
	ContinuationCommand ContinuationCommand `json:"continuationCommand"`
}

// ContinuationCommand holds the raw continuation token.
type ContinuationCommand struct {
	Token string `json:"token"`
}

// TextRuns is YouTube's text container: either a simpleText or a list of runs.
type TextRuns struct {
	SimpleText string    `json:"simpleText,omitempty"`
	Runs       []TextRun `json:"runs,omitempty"`
}

// TextRun is one fragment of a runs-style text field.
type TextRun struct {
	Text string `json:"text"`
}

// String flattens a TextRuns into plain text.
func (t TextRuns) String() string {
	if t.SimpleText != "" {
		return t.SimpleText
	}
	var out string
	for _, r := range t.Runs {
		out += r.Text
	}
	return out
}
