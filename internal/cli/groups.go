package cli

import (
	"strings"

	"github.com/zionladder/frontweb/internal/domain"
	"github.com/zionladder/frontweb/internal/output"
	"github.com/spf13/cobra"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Show apex-domain groups from the domain list",
	Long: `Parse, validate and de-duplicate the domain list, then show the
apex groups exactly as the provisioner would process them.

Examples:
  frontweb groups
  frontweb groups --json`,
	RunE: runGroups,
}

func init() {
	rootCmd.AddCommand(groupsCmd)
}

func runGroups(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	src, err := newLoader(cfg).Load()
	if err != nil {
		return err
	}

	domains, err := domain.Clean(src.Domains)
	if err != nil {
		return err
	}

	groups := domain.GroupByApex(domains)

	if jsonOutput {
		return output.JSON(groups)
	}

	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []string{g.Apex, strings.Join(g.Names, " ")})
	}
	output.Table([]string{"APEX", "NAMES"}, rows)
	output.Print("")
	output.Print("%d group(s) from %d domain(s) in %s", len(groups), len(domains), src.DomainPath)

	return nil
}
