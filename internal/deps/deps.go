// Package deps reports availability of the external tools a scan run shells
// out to. The original toolchain aborts at startup when a required binary is
// missing; CheckBinaries powers the same preflight plus the `digitize deps`
// command.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external binary digitize relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Default returns the binaries a full scan pipeline needs. The OCR-side
// tools are marked optional; scans with ocr disabled run without them.
func Default() []Requirement {
	return []Requirement{
		{Name: "SANE scanimage", Command: "scanimage", Description: "acquires pages from the scanner"},
		{Name: "libtiff tiffcp", Command: "tiffcp", Description: "combines page TIFFs into one multi-page file"},
		{Name: "libtiff tiff2pdf", Command: "tiff2pdf", Description: "converts the combined TIFF to PDF"},
		{Name: "ocrmypdf", Command: "ocrmypdf", Description: "straightens, cleans, and OCRs the PDF", Optional: true},
		{Name: "tesseract", Command: "tesseract", Description: "OCR engine used by ocrmypdf", Optional: true},
		{Name: "unpaper", Command: "unpaper", Description: "page cleanup used by ocrmypdf --clean", Optional: true},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// MissingRequired filters statuses down to unavailable, non-optional
// dependencies.
func MissingRequired(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status)
		}
	}
	return missing
}
