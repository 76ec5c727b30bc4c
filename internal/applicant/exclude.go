package applicant

import (
	"encoding/json"
	"os"
	"time"
)

// ExcludedApplicants is the JSON exclude-file contents: applicants already
// handled in previous runs, keyed by PID only.
type ExcludedApplicants struct {
	Items []*ExcludedApplicant
}

type ExcludedApplicant struct {
	PID        string
	Decision   string
	ExcludedAt time.Time
}

// GetExcludedApplicantsFromFile loads the exclude file. An empty file yields
// an empty list.
func GetExcludedApplicantsFromFile(path string) (*ExcludedApplicants, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedApplicants{}, nil
	}

	var excluded ExcludedApplicants
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

func (e *ExcludedApplicants) Append(s *ExcludedApplicants) {
	e.Items = append(e.Items, s.Items...)
}

func (e *ExcludedApplicants) PIDs() []string {
	pids := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		pids = append(pids, item.PID)
	}
	return pids
}

func (e *ExcludedApplicants) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
