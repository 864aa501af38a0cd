package notify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// ErrUnsupported indicates the host has no tool for the requested side effect.
var ErrUnsupported = errors.New("unsupported on this system")

// Player plays an encoded WAV cue.
type Player interface {
	Play(ctx context.Context, wav []byte) error
}

// NopPlayer discards audio.
type NopPlayer struct{}

func (NopPlayer) Play(context.Context, []byte) error { return nil }

// CommandPlayer plays audio through the first available system player.
type CommandPlayer struct {
	path string
}

func NewCommandPlayer() Player {
	candidates := []string{"paplay", "aplay", "pw-play"}
	if runtime.GOOS == "darwin" {
		candidates = []string{"afplay"}
	}
	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return &CommandPlayer{path: path}
		}
	}
	return unsupportedPlayer{}
}

func (p *CommandPlayer) Play(ctx context.Context, wav []byte) error {
	file, err := os.CreateTemp("", "pausepad-chime-*.wav")
	if err != nil {
		return fmt.Errorf("create chime file: %w", err)
	}
	defer os.Remove(file.Name())

	if _, err := file.Write(wav); err != nil {
		_ = file.Close()
		return fmt.Errorf("write chime file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close chime file: %w", err)
	}

	if output, err := exec.CommandContext(ctx, p.path, file.Name()).CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", p.path, err, output)
	}
	return nil
}

type unsupportedPlayer struct{}

func (unsupportedPlayer) Play(context.Context, []byte) error {
	return fmt.Errorf("audio playback: %w", ErrUnsupported)
}
