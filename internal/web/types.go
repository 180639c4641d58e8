package web

// LineupCard is the view model for one lineup on the index page.
type LineupCard struct {
	Slug            string
	Map             string
	Side            string
	SideLabel       string
	Title           string
	Technique       string
	Movement        string
	Console         string
	SourceURL       string
	FrameBase       string
	CaptionPosition string
	CaptionAim      string
	Bookmarked      bool
}
