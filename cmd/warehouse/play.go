package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/packbotics/warehouse-rl/internal/config"
	"github.com/packbotics/warehouse-rl/internal/env"
	"github.com/packbotics/warehouse-rl/internal/env/core"
)

var playSeed int64

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play an episode interactively in the terminal",
	Long: `Drive the agent from the keyboard. Enter a command and press return:
w/a/s/d move, p pickup, o drop, r reset, q quit.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().Int64Var(&playSeed, "seed", -1, "episode seed (default: play.seed from config)")
}

var playKeymap = map[string]core.Action{
	"w": core.ActionMoveUp,
	"s": core.ActionMoveDown,
	"a": core.ActionMoveLeft,
	"d": core.ActionMoveRight,
	"p": core.ActionPickup,
	"o": core.ActionDrop,
}

const playControls = "Controls: w a s d move | p pickup | o drop | r reset | q quit"

func runPlay(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	seed := playSeed
	if seed < 0 {
		seed = cfg.Play.Seed
	}

	e, err := env.New(cfg.PlayEnvConfig(), env.WithLogger(logger))
	if err != nil {
		return err
	}
	if _, err := e.Reset(seed); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, playControls)
	fmt.Fprintln(out, e.Render())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(out, "cmd: ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line == "" {
			continue
		}
		ch := line[:1]

		switch ch {
		case "q":
			return nil
		case "r":
			if _, err := e.Reset(seed); err != nil {
				return err
			}
			fmt.Fprintln(out, playControls)
			fmt.Fprintln(out, e.Render())
			continue
		}

		action, ok := playKeymap[ch]
		if !ok {
			continue
		}

		_, reward, done, info, err := e.Step(action)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, playControls)
		fmt.Fprintf(out, "event=%s reward=%.1f done=%t reason=%s\n", info.Event, reward, done, info.DoneReason)
		fmt.Fprintln(out, e.Render())

		if done {
			fmt.Fprintln(out, "Episode ended. Press r to reset or q to quit.")
		}
	}
}
