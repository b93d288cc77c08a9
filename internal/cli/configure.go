package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/oktasync/internal/common"
	"github.com/dmitrijs2005/oktasync/internal/config"
	"github.com/dmitrijs2005/oktasync/internal/flagx"
)

// configure persists the API credentials to the default config location.
// Values not given as flags are prompted for.
func (a *App) configure(args []string) error {
	fs := flag.NewFlagSet("configure", flag.ContinueOnError)
	fs.SetOutput(a.errw)
	apiURL := fs.String("api-url", a.cfg.APIURL, "Okta organization URL")
	apiToken := fs.String("api-token", a.cfg.APIToken, "Okta API token")

	allowed := []string{"-api-url", "--api-url", "-api-token", "--api-token"}
	if err := fs.Parse(flagx.FilterArgs(args, allowed)); err != nil {
		return err
	}

	var err error
	if *apiURL == "" {
		if *apiURL, err = a.prompt("Okta organization URL (https://your-org.okta.com)"); err != nil {
			return err
		}
	}
	if *apiToken == "" {
		if *apiToken, err = a.prompt("API token"); err != nil {
			return err
		}
	}
	if *apiURL == "" || *apiToken == "" {
		return fmt.Errorf("both the organization URL and the API token are required: %w", common.ErrValidation)
	}

	a.cfg.APIURL = strings.TrimRight(*apiURL, "/")
	a.cfg.APIToken = *apiToken

	path := config.DefaultPath()
	if path == "" {
		return errors.New("cannot determine the config file location")
	}
	if err := config.Save(path, a.cfg); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "configuration written to %s\n", path)
	return nil
}

// prompt prints a label and reads one trimmed line from the input.
func (a *App) prompt(label string) (string, error) {
	if _, err := fmt.Fprint(a.out, label+"\n> "); err != nil {
		return "", err
	}
	line, err := a.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
