package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/screen"
	sessionscreen "github.com/abhisek/quizdeck/internal/screens/session"
	"github.com/abhisek/quizdeck/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz directly",
	Long: `Start a quiz without going through the menus.

Modes: adaptive, time-attack, sequential, failed, bookmarked, block.
Pass --module more than once to merge modules; without --module the whole
selected topic is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		modeVal, _ := cmd.Flags().GetString("mode")
		moduleIDs, _ := cmd.Flags().GetStringSlice("module")
		topicID, _ := cmd.Flags().GetString("topic")
		block, _ := cmd.Flags().GetString("block")
		minutes, _ := cmd.Flags().GetInt("minutes")

		mode, err := session.ParseMode(modeVal)
		if err != nil {
			return err
		}
		if mode == session.ModeBlock && block == "" {
			return fmt.Errorf("--block is required for block mode")
		}
		limit := time.Duration(minutes) * time.Minute
		if mode == session.ModeTimeAttack && !validDuration(limit) {
			return fmt.Errorf("--minutes must be one of %s", durationChoices())
		}

		return runApp(cmd, func(env *screen.Env) (screen.Screen, error) {
			modules, title, err := resolveModules(env.Catalog, topicID, moduleIDs)
			if err != nil {
				return nil, err
			}
			opts := session.Options{Mode: mode, Modules: modules, Block: block, TimeLimit: limit}
			s, err := sessionscreen.Start(cmd.Context(), env, title+" · "+mode.Label(), opts)
			if err != nil {
				return nil, fmt.Errorf("start quiz: %w", err)
			}
			return s, nil
		})
	},
}

// resolveModules picks the modules to quiz on: explicit IDs, else every
// module of the topic, else of the default topic.
func resolveModules(c *catalog.Catalog, topicID string, moduleIDs []string) ([]*catalog.Module, string, error) {
	if len(moduleIDs) > 0 {
		mods := make([]*catalog.Module, 0, len(moduleIDs))
		names := make([]string, 0, len(moduleIDs))
		for _, id := range moduleIDs {
			m, ok := c.Module(id)
			if !ok {
				return nil, "", fmt.Errorf("unknown module %q", id)
			}
			mods = append(mods, m)
			names = append(names, m.Name)
		}
		return mods, strings.Join(names, " + "), nil
	}

	t := c.DefaultTopic()
	if topicID != "" {
		var ok bool
		if t, ok = c.Topic(topicID); !ok {
			return nil, "", fmt.Errorf("unknown topic %q", topicID)
		}
	}
	if t == nil || len(t.Modules) == 0 {
		return nil, "", fmt.Errorf("the catalog has no modules")
	}
	return t.Modules, t.Name, nil
}

func validDuration(d time.Duration) bool {
	for _, v := range session.TimeAttackDurations {
		if v == d {
			return true
		}
	}
	return false
}

func durationChoices() string {
	parts := make([]string, len(session.TimeAttackDurations))
	for i, d := range session.TimeAttackDurations {
		parts[i] = fmt.Sprint(int(d / time.Minute))
	}
	return strings.Join(parts, ", ")
}

func init() {
	playCmd.Flags().StringP("mode", "m", string(session.ModeAdaptive), "Quiz mode")
	playCmd.Flags().StringSlice("module", nil, "Module ID (repeatable)")
	playCmd.Flags().StringP("topic", "t", "", "Topic ID when no module is given")
	playCmd.Flags().String("block", "", "Block name for block mode")
	playCmd.Flags().Int("minutes", 3, "Time attack length in minutes")
}
