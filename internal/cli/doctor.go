package cli

import (
	"fmt"
	"strings"

	"github.com/zionladder/frontweb/internal/compose"
	"github.com/zionladder/frontweb/internal/domain"
	"github.com/zionladder/frontweb/internal/output"
	"github.com/zionladder/frontweb/internal/source"
	"github.com/zionladder/frontweb/internal/ssl"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system status and diagnose issues",
	Long: `Run diagnostic checks on the environment and source files.

Checks:
  - Docker availability
  - Source file resolution (domain list, proxy target)
  - Domain validity and apex grouping
  - Existing certificate records per group

Examples:
  frontweb doctor
  frontweb doctor --json`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// CheckResult represents a single diagnostic check result
type CheckResult struct {
	Status  string `json:"status"` // "success", "warning", "error"
	Message string `json:"message"`
}

// GroupStatus reports the certificate state of one apex group
type GroupStatus struct {
	Apex        string   `json:"apex"`
	Names       []string `json:"names"`
	StagingCert bool     `json:"staging_cert"`
	ProdCert    bool     `json:"prod_cert"`
}

// DoctorReport contains all diagnostic results
type DoctorReport struct {
	Environment []CheckResult `json:"environment"`
	Sources     []CheckResult `json:"sources"`
	Groups      []GroupStatus `json:"groups"`
}

// dockerChecker is the slice of compose.Compose doctor needs
type dockerChecker interface {
	IsInstalled() bool
}

// certChecker is the slice of ssl.Store doctor needs
type certChecker interface {
	Exists(certName string) bool
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	report := &DoctorReport{}
	report.Environment = checkEnvironment(compose.New(cfg.ComposeDir))

	src, err := newLoader(cfg).Load()
	var domains []string
	report.Sources, domains = checkSources(src, err)
	report.Groups = checkGroups(domains, ssl.NewStore(cfg.CertbotConfDir))

	if jsonOutput {
		return output.JSON(report)
	}

	displayDoctorReport(report)
	return nil
}

// checkEnvironment verifies the external tools the provisioner shells
// out to.
func checkEnvironment(stack dockerChecker) []CheckResult {
	if stack.IsInstalled() {
		return []CheckResult{{"success", "docker installed"}}
	}
	return []CheckResult{{"error", "docker not installed"}}
}

// checkSources reports on source file resolution and domain validity.
// It returns the cleaned domain list for the group checks, empty when
// loading or cleaning failed.
func checkSources(src *source.Sources, loadErr error) ([]CheckResult, []string) {
	if loadErr != nil {
		return []CheckResult{{"error", loadErr.Error()}}, nil
	}

	results := []CheckResult{
		{"success", fmt.Sprintf("domain list: %s (%d entries)", src.DomainPath, len(src.Domains))},
		{"success", fmt.Sprintf("proxy target: %s (%s)", src.ProxyPath, src.ProxyPass)},
	}

	domains, err := domain.Clean(src.Domains)
	if err != nil {
		return append(results, CheckResult{"error", "no valid domains in list"}), nil
	}

	if dropped := len(domain.Dedupe(src.Domains)) - len(domains); dropped > 0 {
		results = append(results,
			CheckResult{"warning", fmt.Sprintf("%d invalid domain(s) will be skipped", dropped)})
	}

	return results, domains
}

// checkGroups reports the certificate state of each apex group.
func checkGroups(domains []string, store certChecker) []GroupStatus {
	var statuses []GroupStatus
	for _, g := range domain.GroupByApex(domains) {
		statuses = append(statuses, GroupStatus{
			Apex:        g.Apex,
			Names:       g.Names,
			StagingCert: store.Exists(ssl.StagingName(g.Apex)),
			ProdCert:    store.Exists(g.Apex),
		})
	}
	return statuses
}

func displayDoctorReport(report *DoctorReport) {
	output.Print("Environment:")
	for _, c := range report.Environment {
		displayCheck(c)
	}

	output.Print("")
	output.Print("Sources:")
	for _, c := range report.Sources {
		displayCheck(c)
	}

	if len(report.Groups) > 0 {
		output.Print("")
		rows := make([][]string, 0, len(report.Groups))
		for _, g := range report.Groups {
			rows = append(rows, []string{
				g.Apex,
				strings.Join(g.Names, " "),
				certMark(g.StagingCert),
				certMark(g.ProdCert),
			})
		}
		output.Table([]string{"APEX", "NAMES", "STAGING", "PROD"}, rows)
	}
}

func displayCheck(c CheckResult) {
	switch c.Status {
	case "success":
		output.Success("%s", c.Message)
	case "warning":
		output.Warn("%s", c.Message)
	default:
		output.Error("%s", c.Message)
	}
}

func certMark(exists bool) string {
	if exists {
		return "yes"
	}
	return "no"
}
