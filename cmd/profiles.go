package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hwdb-project/hwdbctl/pkg/catalog"
	"github.com/hwdb-project/hwdbctl/pkg/output"
	"github.com/hwdb-project/hwdbctl/pkg/runner"
)

// profileRow is the table shape shared by every profile listing.
type profileRow struct {
	Codename     string `json:"codename" yaml:"codename"`
	Description  string `json:"description" yaml:"description"`
	License      string `json:"license" yaml:"license"`
	Priority     int32  `json:"priority" yaml:"priority"`
	Experimental string `json:"experimental" yaml:"experimental"`
	Installed    string `json:"installed" yaml:"installed"`
}

const descriptionWidth = 36

func fetchCatalog(domain catalog.Domain) (*catalog.Catalog, error) {
	return source.Fetch(context.Background(), domain)
}

// visibleProfiles filters veiled entries out of listings unless --all.
func visibleProfiles(profiles []*catalog.Profile) []*catalog.Profile {
	if allFlag {
		return profiles
	}
	var out []*catalog.Profile
	for _, p := range profiles {
		if !p.Veiled {
			out = append(out, p)
		}
	}
	return out
}

// profileRows renders profiles in catalog (priority) order, probing each
// profile's installed status through its check script.
func profileRows(profiles []*catalog.Profile) []profileRow {
	rows := make([]profileRow, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, profileRow{
			Codename:     p.Codename,
			Description:  output.Truncate(p.Description, descriptionWidth),
			License:      p.License,
			Priority:     p.Priority,
			Experimental: yesNo(p.Experimental),
			Installed:    yesNo(prun.Status(p)),
		})
	}
	return rows
}

func yesNo(b bool) string {
	if b {
		return tr.T("yes")
	}
	return tr.T("no")
}

// printProfileStatus implements the shared `<domain> status <codename>`
// behavior.
func printProfileStatus(out io.Writer, domain catalog.Domain, codename string) error {
	p, err := lookupProfile(domain, codename)
	if err != nil {
		return err
	}
	if prun.Status(p) {
		fmt.Fprintln(out, tr.T("yes"))
	} else {
		fmt.Fprintln(out, tr.T("no"))
	}
	return nil
}

// installProfile implements the shared `<domain> install <codename>`
// behavior.
func installProfile(out io.Writer, domain catalog.Domain, codename string) error {
	p, err := lookupProfile(domain, codename)
	if err != nil {
		return err
	}
	if dryRun {
		printPlan(out, cfg.PackageManager.Install, p.Packages, p.InstallScript)
		return nil
	}
	outcome, err := prun.Install(p)
	if err != nil {
		return err
	}
	switch outcome {
	case runner.OutcomeAlreadySatisfied:
		fmt.Fprintln(out, tr.T("already_installed"))
	case runner.OutcomeNothingToRun:
		fmt.Fprintln(out, tr.T("nothing_to_do"))
	default:
		fmt.Fprintln(out, tr.T("installed_ok"))
	}
	return nil
}

// uninstallProfile implements the shared `<domain> uninstall <codename>`
// behavior, including the removability check and confirmation prompt.
func uninstallProfile(out io.Writer, domain catalog.Domain, codename string) error {
	p, err := lookupProfile(domain, codename)
	if err != nil {
		return err
	}
	if !p.Removable {
		return fmt.Errorf("profile %q is not removable", codename)
	}
	if dryRun {
		printPlan(out, cfg.PackageManager.Remove, p.Packages, p.RemoveScript)
		return nil
	}
	if !yesFlag {
		fmt.Fprintf(out, "Uninstall profile %q? [y/N]: ", codename)
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Scan()
		if strings.ToLower(strings.TrimSpace(scanner.Text())) != "y" {
			fmt.Fprintln(out, tr.T("aborted"))
			return nil
		}
	}
	outcome, err := prun.Uninstall(p)
	if err != nil {
		return err
	}
	switch outcome {
	case runner.OutcomeAlreadySatisfied:
		fmt.Fprintln(out, tr.T("not_installed"))
	case runner.OutcomeNothingToRun:
		fmt.Fprintln(out, tr.T("nothing_to_do"))
	default:
		fmt.Fprintln(out, tr.T("removed_ok"))
	}
	return nil
}

// printPlan shows the shell lines an operation would run, in composition
// order: the package-manager command first, then the profile script.
func printPlan(out io.Writer, pkgCmd string, packages []string, script *string) {
	if len(packages) > 0 {
		fmt.Fprintf(out, "would run: %s %s\n", pkgCmd, strings.Join(packages, " "))
	}
	if script != nil && *script != "" {
		fmt.Fprintf(out, "would run: %s\n", *script)
	}
	if len(packages) == 0 && (script == nil || *script == "") {
		fmt.Fprintln(out, tr.T("nothing_to_do"))
	}
}

func lookupProfile(domain catalog.Domain, codename string) (*catalog.Profile, error) {
	if err := catalog.ValidateCodename(codename); err != nil {
		return nil, err
	}
	cat, err := fetchCatalog(domain)
	if err != nil {
		return nil, err
	}
	return cat.Profile(codename)
}
