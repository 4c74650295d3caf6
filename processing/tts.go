package processing

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	log "github.com/sirupsen/logrus"

	"github.com/ameyarj/chima-ads/internal/config"
)

// maxTTSInputLen is the provider's input limit. Longer text is truncated with
// a trailing ellipsis rather than rejected.
const maxTTSInputLen = 4000

const DefaultVoice = "nova"

// Synthesizer turns narration text into an MP3 file via the TTS API.
type Synthesizer struct {
	client   openai.Client
	audioDir string
}

func NewSynthesizer(cfg *config.Config) (*Synthesizer, error) {
	if err := os.MkdirAll(cfg.AudioDir, 0o755); err != nil {
		return nil, fmt.Errorf("create audio directory: %w", err)
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.LLMAPIKey)}
	if cfg.LLMBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.LLMBaseURL))
	}

	return &Synthesizer{
		client:   openai.NewClient(opts...),
		audioDir: cfg.AudioDir,
	}, nil
}

// Synthesize generates speech for the text and writes it to a new file in the
// audio directory. Returns the file path and an estimated spoken duration in
// seconds.
func (s *Synthesizer) Synthesize(ctx context.Context, text, voice string, speed float64) (string, int, error) {
	text = TruncateForSpeech(text)
	if voice == "" {
		voice = DefaultVoice
	}
	if speed <= 0 {
		speed = 1.0
	}

	log.Infof("Generating TTS audio (voice=%s speed=%.2f, %d chars)", voice, speed, len(text))

	resp, err := s.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModelTTS1,
		Input:          text,
		Voice:          openai.AudioSpeechNewParamsVoice(voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
		Speed:          openai.Float(speed),
	})
	if err != nil {
		return "", 0, fmt.Errorf("failed to generate TTS audio: %w", err)
	}
	defer resp.Body.Close()

	filename := fmt.Sprintf("tts-%d-%s.mp3", time.Now().UnixMilli(), uuid.NewString()[:8])
	path := filepath.Join(s.audioDir, filename)

	out, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create audio file: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(path)
		return "", 0, fmt.Errorf("write audio file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", 0, fmt.Errorf("close audio file: %w", err)
	}

	duration := EstimateDuration(text, speed)
	log.Infof("TTS audio generated: %s (~%ds)", path, duration)
	return path, duration, nil
}

// TruncateForSpeech enforces the provider's input limit, appending an ellipsis
// when the text was cut. The cut backs up to a rune boundary so the provider
// never receives invalid UTF-8.
func TruncateForSpeech(text string) string {
	if len(text) <= maxTTSInputLen {
		return text
	}
	log.Warn("TTS text truncated to fit provider limits")
	cut := maxTTSInputLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}

// EstimateDuration approximates spoken duration in seconds at 150 words per
// minute scaled by the speed multiplier, rounded up. Informational only; the
// render timeline does not stretch to match it.
func EstimateDuration(text string, speed float64) int {
	if speed <= 0 {
		speed = 1.0
	}
	wordCount := len(strings.Fields(text))
	wordsPerMinute := 150 * speed
	return int(math.Ceil(float64(wordCount) / wordsPerMinute * 60))
}
