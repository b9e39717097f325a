package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/viper"

	"github.com/taskkeep/taskkeep/internal/ui"
)

func isJSON() bool {
	return viper.GetBool("json")
}

func isVerbose() bool {
	return viper.GetBool("verbose")
}

func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

// confirmProceed asks the user to confirm a destructive action. Outside a
// terminal there is nobody to ask, so the caller must pass --force instead.
func confirmProceed(label string) error {
	if !ui.IsInteractive() {
		return ErrNoTerminal
	}

	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if err == promptui.ErrAbort || err == promptui.ErrInterrupt {
			return fmt.Errorf("cancelled by user")
		}
		return err
	}
	return nil
}
