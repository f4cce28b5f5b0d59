package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"sort"
	"sync"
	"time"

	"github.com/gabrielcapilla/musify/internal/logger"
	"github.com/gabrielcapilla/musify/internal/ports"
)

const (
	socketCheckRetries  = 20
	socketCheckInterval = 100 * time.Millisecond
	socketReadDeadline  = 500 * time.Millisecond
)

var execCommand = exec.Command

// ErrEmptyQueue is returned by PlayQueue when there is nothing to play.
var ErrEmptyQueue = errors.New("nothing to play")

type MpvCommand struct {
	Command   []any `json:"command"`
	RequestID int   `json:"request_id,omitempty"`
}

type MpvResponse struct {
	Error     string `json:"error"`
	Data      any    `json:"data"`
	RequestID int    `json:"request_id"`
	Event     string `json:"event"`
}

// MpvPlayer drives an mpv process over its JSON IPC socket.
type MpvPlayer struct {
	socketPath string
	cmd        *exec.Cmd
	mu         sync.Mutex
}

func NewMpvPlayer(socketPath string) *MpvPlayer {
	os.Remove(socketPath)
	return &MpvPlayer{socketPath: socketPath}
}

func (p *MpvPlayer) isProcessRunning() bool {
	return p.cmd != nil && p.cmd.Process != nil
}

// startMpvProcess must be called with p.mu held.
func (p *MpvPlayer) startMpvProcess() error {
	if p.isProcessRunning() {
		if p.cmd.ProcessState != nil && p.cmd.ProcessState.Exited() {
			p.cmd = nil
		} else {
			return nil
		}
	}

	logger.Log.Info().Str("socket", p.socketPath).Msg("Starting new mpv process...")
	p.cmd = execCommand("mpv",
		"--idle",
		"--input-ipc-server="+p.socketPath,
		"--no-video",
		"--no-config",
	)

	if err := p.cmd.Start(); err != nil {
		p.cmd = nil
		return fmt.Errorf("could not start mpv process: %w", err)
	}

	for i := 0; i < socketCheckRetries; i++ {
		if _, err := os.Stat(p.socketPath); err == nil {
			logger.Log.Info().Msg("mpv socket detected. Process ready.")
			return nil
		}
		time.Sleep(socketCheckInterval)
	}

	logger.Log.Error().Str("socket", p.socketPath).Msg("Timed out waiting for mpv socket.")
	p.cmd.Process.Kill()
	p.cmd = nil
	return fmt.Errorf("mpv process started but socket did not appear at %s", p.socketPath)
}

// sendCommands numbers cmds from 1 and returns the replies in command order.
// A command mpv did not answer before the read deadline has a zero response.
func (p *MpvPlayer) sendCommands(cmds ...MpvCommand) ([]MpvResponse, error) {
	conn, err := net.Dial("unix", p.socketPath)
	if err != nil {
		return nil, fmt.Errorf("could not connect to mpv socket: %w", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(socketReadDeadline))

	encoder := json.NewEncoder(conn)
	for i := range cmds {
		cmds[i].RequestID = i + 1
		if err := encoder.Encode(cmds[i]); err != nil {
			return nil, fmt.Errorf("error sending mpv command: %w", err)
		}
	}

	responses := make([]MpvResponse, len(cmds))
	received := 0
	scanner := bufio.NewScanner(conn)
	for received < len(cmds) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				logger.Log.Error().Err(err).Msg("Error reading from mpv socket")
			}
			break
		}

		line := scanner.Bytes()
		var resp MpvResponse
		if err := json.Unmarshal(line, &resp); err != nil {
			logger.Log.Warn().Str("line", string(line)).Err(err).Msg("Could not parse line from mpv")
			continue
		}

		if resp.Event == "" && resp.RequestID > 0 && resp.RequestID <= len(cmds) {
			responses[resp.RequestID-1] = resp
			received++
		}
	}

	return responses, nil
}

// runCommands sends cmds and fails on the first command mpv rejected.
func (p *MpvPlayer) runCommands(cmds ...MpvCommand) error {
	responses, err := p.sendCommands(cmds...)
	if err != nil {
		return err
	}
	for i, resp := range responses {
		if resp.Error != "" && resp.Error != "success" {
			return fmt.Errorf("mpv rejected %v: %s", cmds[i].Command[0], resp.Error)
		}
	}
	return nil
}

// queueCommands loads the sources from start onward into a fresh mpv
// playlist. HTTP settings are taken from the first progressive source.
func queueCommands(queue *ports.ConcatenatingMediaSource, start int) []MpvCommand {
	sources := queue.Sources()
	if start < 0 || start >= len(sources) {
		return nil
	}
	sources = sources[start:]

	var cmds []MpvCommand
	if ps, ok := sources[0].(ProgressiveSource); ok {
		if ps.UserAgent != "" {
			cmds = append(cmds, MpvCommand{Command: []any{"set_property", "user-agent", ps.UserAgent}})
		}
		if len(ps.Headers) > 0 {
			fields := make([]string, 0, len(ps.Headers))
			for k, v := range ps.Headers {
				fields = append(fields, k+": "+v)
			}
			sort.Strings(fields)
			cmds = append(cmds, MpvCommand{Command: []any{"set_property", "http-header-fields", fields}})
		}
	}

	for i, src := range sources {
		mode := "append-play"
		if i == 0 {
			mode = "replace"
		}
		cmds = append(cmds, MpvCommand{Command: []any{"loadfile", src.URI(), mode}})
	}
	return cmds
}

func (p *MpvPlayer) Play(mediaURL string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.startMpvProcess(); err != nil {
		return err
	}
	return p.runCommands(MpvCommand{Command: []any{"loadfile", mediaURL, "replace"}})
}

// PlayQueue replaces the mpv playlist with queue, starting at index start.
func (p *MpvPlayer) PlayQueue(queue *ports.ConcatenatingMediaSource, start int) error {
	cmds := queueCommands(queue, start)
	if len(cmds) == 0 {
		return ErrEmptyQueue
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.startMpvProcess(); err != nil {
		return err
	}
	return p.runCommands(cmds...)
}

func (p *MpvPlayer) command(args ...any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.isProcessRunning() {
		return nil
	}
	return p.runCommands(MpvCommand{Command: args})
}

func (p *MpvPlayer) Pause() error { return p.command("cycle", "pause") }
func (p *MpvPlayer) Next() error  { return p.command("playlist-next", "weak") }
func (p *MpvPlayer) Stop() error  { return p.command("stop") }

func (p *MpvPlayer) GetState() (ports.PlayerState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	state := ports.PlayerState{Index: -1}
	if !p.isProcessRunning() {
		return state, nil
	}

	responses, err := p.sendCommands(
		MpvCommand{Command: []any{"get_property", "pause"}},
		MpvCommand{Command: []any{"get_property", "time-pos"}},
		MpvCommand{Command: []any{"get_property", "duration"}},
		MpvCommand{Command: []any{"get_property", "playlist-pos"}},
	)
	if err != nil {
		return state, err
	}
	return stateFromResponses(responses), nil
}

// stateFromResponses reads the replies to the pause, time-pos, duration and
// playlist-pos queries. Properties mpv could not report keep their zero
// value, except Index which stays -1.
func stateFromResponses(responses []MpvResponse) ports.PlayerState {
	state := ports.PlayerState{Index: -1}
	for i, resp := range responses {
		if resp.Error != "success" {
			continue
		}
		switch i {
		case 0:
			if isPaused, ok := resp.Data.(bool); ok {
				state.IsPlaying = !isPaused
			}
		case 1:
			if pos, ok := resp.Data.(float64); ok {
				state.Position = pos
			}
		case 2:
			if dur, ok := resp.Data.(float64); ok {
				state.Duration = dur
			}
		case 3:
			if idx, ok := resp.Data.(float64); ok {
				state.Index = int(idx)
			}
		}
	}
	return state
}

func (p *MpvPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.isProcessRunning() {
		if err := p.cmd.Process.Kill(); err != nil {
			logger.Log.Error().Err(err).Msg("Error terminating mpv process")
		}
		p.cmd.Wait()
		p.cmd = nil
	}
	os.Remove(p.socketPath)
	return nil
}
