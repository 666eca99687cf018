package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/manavmaharishi/voicemation-final/application/ports/inbound"
	"github.com/manavmaharishi/voicemation-final/domain"
	"github.com/manavmaharishi/voicemation-final/infrastructure/adapters"
)

type fakeTranscoder struct {
	err error
}

func (f *fakeTranscoder) ToWav(_ context.Context, _ string, outputPath string) error {
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(outputPath, []byte("wav"), 0o644)
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(context.Context, string) (string, error) {
	return f.text, f.err
}

func TestNormalizeText(t *testing.T) {
	normalizer := NewRequestNormalizer(&fakeTranscoder{}, &fakeTranscriber{}, adapters.NewZerologWrapper())

	topic, err := normalizer.Normalize(context.Background(), inbound.NormalizeParams{
		Text:    "  explain derivatives  ",
		WorkDir: t.TempDir(),
	})
	if err != nil {
		t.Fatal("Unexpected error:", err)
	}
	if topic != "explain derivatives" {
		t.Errorf("Topic = %q", topic)
	}
}

func TestNormalizeEmptyText(t *testing.T) {
	normalizer := NewRequestNormalizer(&fakeTranscoder{}, &fakeTranscriber{}, adapters.NewZerologWrapper())

	_, err := normalizer.Normalize(context.Background(), inbound.NormalizeParams{
		Text:    "   ",
		WorkDir: t.TempDir(),
	})
	if !errors.Is(err, domain.ErrEmptyInput) {
		t.Fatal("Expected ErrEmptyInput, got:", err)
	}
}

func TestNormalizeAudio(t *testing.T) {
	workDir := t.TempDir()
	audioPath := filepath.Join(workDir, "upload.webm")
	if err := os.WriteFile(audioPath, []byte("audio"), 0o644); err != nil {
		t.Fatal("Failed to write audio fixture:", err)
	}

	normalizer := NewRequestNormalizer(&fakeTranscoder{}, &fakeTranscriber{text: " the chain rule "}, adapters.NewZerologWrapper())

	topic, err := normalizer.Normalize(context.Background(), inbound.NormalizeParams{
		AudioPath: audioPath,
		WorkDir:   workDir,
	})
	if err != nil {
		t.Fatal("Unexpected error:", err)
	}
	if topic != "the chain rule" {
		t.Errorf("Topic = %q", topic)
	}

	if _, err := os.Stat(filepath.Join(workDir, "upload.wav")); !os.IsNotExist(err) {
		t.Error("Intermediate wav file was not removed")
	}
}

func TestNormalizeAudioEmptyTranscript(t *testing.T) {
	workDir := t.TempDir()

	normalizer := NewRequestNormalizer(&fakeTranscoder{}, &fakeTranscriber{text: "  "}, adapters.NewZerologWrapper())

	_, err := normalizer.Normalize(context.Background(), inbound.NormalizeParams{
		AudioPath: filepath.Join(workDir, "in.webm"),
		WorkDir:   workDir,
	})
	if !errors.Is(err, domain.ErrUnrecognizedSpeech) {
		t.Fatal("Expected ErrUnrecognizedSpeech, got:", err)
	}
}

func TestNormalizeAudioTranscodeFailure(t *testing.T) {
	workDir := t.TempDir()

	normalizer := NewRequestNormalizer(
		&fakeTranscoder{err: domain.ErrTranscodeFailure},
		&fakeTranscriber{text: "unused"},
		adapters.NewZerologWrapper(),
	)

	_, err := normalizer.Normalize(context.Background(), inbound.NormalizeParams{
		AudioPath: filepath.Join(workDir, "in.webm"),
		WorkDir:   workDir,
	})
	if !errors.Is(err, domain.ErrTranscodeFailure) {
		t.Fatal("Expected ErrTranscodeFailure, got:", err)
	}
}
