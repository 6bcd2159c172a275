package bootstrap

import (
	"fmt"
	"strings"

	"github.com/chmouel/nuprompt/internal/config"
	"github.com/chmouel/nuprompt/internal/prompt"
)

func shellQuote(s string) string {
	return "'" + prompt.Escape(s) + "'"
}

// hookSnippet returns the lines that install nuprompt into shell's
// pre-command and post-command hooks. The output is meant for eval.
func hookSnippet(shell, exe string) (string, error) {
	q := shellQuote(exe)
	switch shell {
	case config.ShellBash:
		ps0 := fmt.Sprintf("$(%s ps0 $$)", q)
		promptCommand := fmt.Sprintf(`eval "$(%s --shell bash ps1 $$ $?)"`, q)
		return strings.Join([]string{
			"PS0=" + shellQuote(ps0),
			"PROMPT_COMMAND=" + shellQuote(promptCommand),
		}, "\n") + "\n", nil
	case config.ShellZsh:
		return strings.Join([]string{
			fmt.Sprintf(`_nuprompt_preexec() { %s ps0 $$; }; _nuprompt_precmd() { eval "$(%s --shell zsh ps1 $$ $?)"; }`, q, q),
			"autoload -Uz add-zsh-hook && add-zsh-hook preexec _nuprompt_preexec && add-zsh-hook precmd _nuprompt_precmd",
		}, "\n") + "\n", nil
	default:
		return "", fmt.Errorf("%w: unsupported shell %q", ErrUsage, shell)
	}
}
