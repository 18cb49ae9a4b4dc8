package extract

import (
	"regexp"
	"strings"
)

// Placeholder values returned when no pattern matches. Callers rely on these
// instead of errors: a resume without a detectable name still uploads.
const (
	UntitledPosition = "Untitled Position"
	UnknownCompany   = "Unknown Company"
	UnknownCandidate = "Unknown Candidate"
)

type JobDetails struct {
	Title   string
	Company string
}

type CandidateInfo struct {
	Name  string
	Email string
}

// Ordered pattern lists; first match wins.
var (
	titlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^\s*Job Title:\s*(.+?)\s*$`),
		regexp.MustCompile(`(?im)^\s*Position:\s*(.+?)\s*$`),
		regexp.MustCompile(`(?im)^\s*Role:\s*(.+?)\s*$`),
		regexp.MustCompile(`(?m)^([A-Z][A-Za-z\s]+(?:Developer|Engineer|Manager|Analyst|Designer))\s*$`),
	}
	companyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^\s*Company:\s*(.+?)\s*$`),
		regexp.MustCompile(`(?im)^\s*Organization:\s*(.+?)\s*$`),
		regexp.MustCompile(`(?im)^\s*Employer:\s*(.+?)\s*$`),
		regexp.MustCompile(`(?m)@\s*([A-Za-z0-9][A-Za-z0-9\s]*)\s*$`),
	}

	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	namePattern  = regexp.MustCompile(`^([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`)
)

// GuessJobDetails scans job-description text for a title and company.
func GuessJobDetails(content string) JobDetails {
	details := JobDetails{Title: UntitledPosition, Company: UnknownCompany}

	for _, p := range titlePatterns {
		if m := p.FindStringSubmatch(content); m != nil {
			details.Title = strings.TrimSpace(m[1])
			break
		}
	}
	for _, p := range companyPatterns {
		if m := p.FindStringSubmatch(content); m != nil {
			details.Company = strings.TrimSpace(m[1])
			break
		}
	}
	return details
}

// GuessCandidateInfo scans resume text for the candidate's name and email.
// The name is only looked for in the first three lines.
func GuessCandidateInfo(content string) CandidateInfo {
	info := CandidateInfo{Name: UnknownCandidate}

	if m := emailPattern.FindString(content); m != "" {
		info.Email = m
	}

	lines := strings.Split(content, "\n")
	if len(lines) > 3 {
		lines = lines[:3]
	}
	for _, line := range lines {
		if m := namePattern.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			info.Name = m[1]
			break
		}
	}
	return info
}
