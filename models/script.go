package models

// AdScript is the generated ad copy for one video. The voiceover sub-record is
// attached at creation time when voiceover is enabled and never changed after.
type AdScript struct {
	Hook         string     `json:"hook"`
	Problem      string     `json:"problem"`
	Solution     string     `json:"solution"`
	Benefits     []string   `json:"benefits"`
	CallToAction string     `json:"callToAction"`
	Duration     int        `json:"duration"`
	Voiceover    *Voiceover `json:"voiceover,omitempty"`
}

// Voiceover configures narration synthesis for a script.
type Voiceover struct {
	Enabled bool    `json:"enabled"`
	Voice   string  `json:"voice"`
	Speed   float64 `json:"speed"`
	Text    string  `json:"text"`
}
