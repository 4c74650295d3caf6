package rendering

// The composition plays a fixed sequential schedule regardless of the actual
// narration length: hook, problem, solution, benefits, then call to action for
// whatever remains of the 30 second total. Known gap: a voiceover that runs
// long is simply cut off by the end of the video.

const (
	FPS          = 30
	TotalSeconds = 30
	TotalFrames  = FPS * TotalSeconds
)

// Section is a half-open frame range [StartFrame, EndFrame) during which
// exactly one part of the script is on screen.
type Section struct {
	Name       string `json:"name"`
	StartFrame int    `json:"startFrame"`
	EndFrame   int    `json:"endFrame"`
}

const (
	SectionHook         = "hook"
	SectionProblem      = "problem"
	SectionSolution     = "solution"
	SectionBenefits     = "benefits"
	SectionCallToAction = "callToAction"
)

var sectionSeconds = []struct {
	name    string
	seconds int
}{
	{SectionHook, 3},
	{SectionProblem, 5},
	{SectionSolution, 8},
	{SectionBenefits, 10},
	{SectionCallToAction, 0}, // remainder
}

// Timeline returns the section schedule. Sections are contiguous and cover
// [0, TotalFrames) with no gaps or overlap.
func Timeline() []Section {
	sections := make([]Section, 0, len(sectionSeconds))
	start := 0
	for i, s := range sectionSeconds {
		end := start + s.seconds*FPS
		if i == len(sectionSeconds)-1 {
			end = TotalFrames
		}
		sections = append(sections, Section{Name: s.name, StartFrame: start, EndFrame: end})
		start = end
	}
	return sections
}

// SectionAt returns the section visible at the given frame, or false when the
// frame lies outside the composition.
func SectionAt(frame int) (Section, bool) {
	if frame < 0 || frame >= TotalFrames {
		return Section{}, false
	}
	for _, s := range Timeline() {
		if frame >= s.StartFrame && frame < s.EndFrame {
			return s, true
		}
	}
	return Section{}, false
}
