package rendering

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ameyarj/chima-ads/models"
)

const renderTimeout = 5 * time.Minute

const compositionID = "ProductShowcase"

// ErrRenderTimeout is returned when the composition process exceeds its time bound.
var ErrRenderTimeout = errors.New("render timed out")

// Renderer drives the Remotion CLI composition.
type Renderer struct {
	videosDir   string
	remotionDir string
}

func NewRenderer(videosDir, remotionDir string) (*Renderer, error) {
	if err := os.MkdirAll(videosDir, 0o755); err != nil {
		return nil, fmt.Errorf("create videos directory: %w", err)
	}
	return &Renderer{videosDir: videosDir, remotionDir: remotionDir}, nil
}

// renderProps is the payload handed to the composition.
type renderProps struct {
	ProductData *models.ProductData `json:"productData"`
	AdScript    *models.AdScript    `json:"adScript"`
	AspectRatio string              `json:"aspectRatio"`
	Template    string              `json:"template"`
	AudioPath   string              `json:"audioPath,omitempty"`
	Timeline    []Section           `json:"timeline"`
}

// Render produces the video file for a job and returns its path. The props
// staging file is removed on every exit path; the output file is kept only on
// success.
func (r *Renderer) Render(ctx context.Context, id string, product *models.ProductData, script *models.AdScript, aspectRatio, template, audioRef string) (string, error) {
	outputPath, err := filepath.Abs(filepath.Join(r.videosDir, id+".mp4"))
	if err != nil {
		return "", fmt.Errorf("resolve output path: %w", err)
	}

	propsPath := filepath.Join(r.videosDir, id+"-data.json")
	props, err := json.Marshal(renderProps{
		ProductData: product,
		AdScript:    script,
		AspectRatio: aspectRatio,
		Template:    template,
		AudioPath:   audioRef,
		Timeline:    Timeline(),
	})
	if err != nil {
		return "", fmt.Errorf("marshal render props: %w", err)
	}
	if err := os.WriteFile(propsPath, props, 0o644); err != nil {
		return "", fmt.Errorf("write render props: %w", err)
	}
	defer os.Remove(propsPath)

	absPropsPath, err := filepath.Abs(propsPath)
	if err != nil {
		return "", fmt.Errorf("resolve props path: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "npx", "remotion", "render", compositionID, outputPath, "--props="+absPropsPath)
	cmd.Dir = r.remotionDir

	log.Infof("Rendering composition for %s (%s, template=%s)", id, aspectRatio, template)
	output, err := cmd.CombinedOutput()
	if err != nil {
		os.Remove(outputPath)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w after %s", ErrRenderTimeout, renderTimeout)
		}
		return "", fmt.Errorf("remotion render failed: %w, output: %s", err, string(output))
	}

	if _, err := os.Stat(outputPath); err != nil {
		return "", fmt.Errorf("render produced no output file: %w", err)
	}

	return outputPath, nil
}

// StageAudio copies a synthesized audio file into the composition's public
// directory so it can be referenced by relative path. The returned cleanup
// removes both the staged copy and the source file. On failure the source
// file is removed here, so no temporary audio outlives the job.
func (r *Renderer) StageAudio(id, srcPath string) (string, func(), error) {
	publicDir := filepath.Join(r.remotionDir, "public")
	if err := os.MkdirAll(publicDir, 0o755); err != nil {
		os.Remove(srcPath)
		return "", nil, fmt.Errorf("create public directory: %w", err)
	}

	ref := id + ".mp3"
	stagedPath := filepath.Join(publicDir, ref)
	if err := copyFile(srcPath, stagedPath); err != nil {
		os.Remove(srcPath)
		return "", nil, fmt.Errorf("stage audio: %w", err)
	}

	cleanup := func() {
		os.Remove(stagedPath)
		os.Remove(srcPath)
	}
	return ref, cleanup, nil
}

// minimalMP4 is a bare ftyp box, just enough for players to recognize the
// container. Used only in placeholder failure mode.
var minimalMP4 = []byte{
	0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p',
	'm', 'p', '4', '2', 0x00, 0x00, 0x00, 0x00,
	'm', 'p', '4', '2', 'i', 's', 'o', 'm',
}

// WritePlaceholder writes a stub video file for a job and returns its path.
func (r *Renderer) WritePlaceholder(id string) (string, error) {
	outputPath, err := filepath.Abs(filepath.Join(r.videosDir, id+".mp4"))
	if err != nil {
		return "", fmt.Errorf("resolve output path: %w", err)
	}
	if err := os.WriteFile(outputPath, minimalMP4, 0o644); err != nil {
		return "", fmt.Errorf("write placeholder video: %w", err)
	}
	return outputPath, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
