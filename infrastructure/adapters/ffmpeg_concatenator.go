package adapters

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/manavmaharishi/voicemation-final/application/ports/outbound"
	"github.com/manavmaharishi/voicemation-final/domain"
)

type ffmpegConcatenator struct {
	logger outbound.LoggerPort
}

// NewFFmpegConcatenator joins rendered clips with a stream copy so ordering
// and quality are preserved exactly. Source clips are kept on disk; only the
// concat manifest is temporary.
func NewFFmpegConcatenator(logger outbound.LoggerPort) outbound.ConcatenatorPort {
	return &ffmpegConcatenator{
		logger: logger,
	}
}

func (f *ffmpegConcatenator) Concatenate(clips []domain.RenderedClip, outputDir string) (string, error) {
	if len(clips) == 0 {
		return "", fmt.Errorf("%w: no clips to concatenate", domain.ErrConcat)
	}
	if len(clips) == 1 {
		return clips[0].FilePath, nil
	}

	manifestPath, err := f.writeManifest(clips, outputDir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrConcat, err)
	}
	defer func() {
		if err := os.Remove(manifestPath); err != nil {
			f.logger.Error(err, "Failed to remove concat manifest")
		}
	}()

	outputPath := filepath.Join(outputDir, "combined_"+uuid.NewString()+".mp4")

	cmd := exec.Command("ffmpeg", "-f", "concat", "-safe", "0", "-i", manifestPath, "-c", "copy", outputPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		f.logger.ErrorWithFields(err, "Failed to concatenate clips", map[string]interface{}{
			"clips":  len(clips),
			"output": string(out),
		})
		return "", fmt.Errorf("%w: %v", domain.ErrConcat, err)
	}

	return outputPath, nil
}

func (f *ffmpegConcatenator) writeManifest(clips []domain.RenderedClip, outputDir string) (string, error) {
	manifest, err := os.Create(filepath.Join(outputDir, uuid.NewString()+".txt"))
	if err != nil {
		f.logger.Error(err, "Failed to create concat manifest")
		return "", err
	}
	defer func() {
		if err := manifest.Close(); err != nil {
			f.logger.Error(err, "Failed to close concat manifest")
		}
	}()

	writer := bufio.NewWriter(manifest)
	for _, clip := range clips {
		absPath, err := filepath.Abs(clip.FilePath)
		if err != nil {
			return "", err
		}
		if _, err := writer.WriteString("file '" + absPath + "'\n"); err != nil {
			f.logger.Error(err, "Failed to write to concat manifest")
			return "", err
		}
	}
	if err := writer.Flush(); err != nil {
		f.logger.Error(err, "Failed to flush concat manifest")
		return "", err
	}

	return manifest.Name(), nil
}
