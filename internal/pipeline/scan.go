package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/theirongolddev/ccdash/internal/cache"
	"github.com/theirongolddev/ccdash/internal/model"
	"github.com/theirongolddev/ccdash/internal/pricing"
	"github.com/theirongolddev/ccdash/internal/source"
)

// The message shown when the projects root does not exist yet.
const noProjectsMessage = "No projects found. Run Claude Code at least once to generate session logs."

// ProgressFunc is called during scanning to report progress.
// current is the number of files processed so far, total is the total count.
type ProgressFunc func(current, total int)

// Scanner runs the scan pipeline against one projects root. It is
// stateless apart from the injected cache; methods may be called
// concurrently.
type Scanner struct {
	Root     string
	Rates    pricing.Rates
	Cache    *cache.Store
	Progress ProgressFunc
}

// ScanAll scans every project under the root and returns the full
// result. With useCache it returns the cached slot when present; a
// fresh scan stores its result in the cache on success. A missing root
// yields success=false with a user-facing message, not an error.
func (s *Scanner) ScanAll(useCache bool) model.ScanResult {
	if useCache && s.Cache != nil {
		if res, _, ok := s.Cache.Get(); ok {
			return res
		}
	}

	start := time.Now()
	res := s.scan(start)
	res.Metadata.DurationMs = time.Since(start).Milliseconds()

	if res.Success && s.Cache != nil {
		s.Cache.Set(res)
	}
	return res
}

func (s *Scanner) scan(start time.Time) model.ScanResult {
	res := model.ScanResult{
		Projects: []model.Project{},
		Metadata: model.ScanMetadata{ScannedAt: start},
	}

	dirs, err := source.DiscoverProjects(s.Root)
	if err != nil {
		if os.IsNotExist(err) {
			res.Message = noProjectsMessage
		} else {
			res.Message = fmt.Sprintf("projects directory unreadable: %v", err)
		}
		return res
	}

	// List every project's files up front so the pool can fan out over
	// one flat job list. Unlistable projects are skipped with a warning.
	type fileJob struct {
		project int
		path    string
	}
	var jobs []fileJob
	unlistable := make(map[int]bool)
	for i, d := range dirs {
		files, listErr := source.ListSessionFiles(d.Dir)
		if listErr != nil {
			res.Metadata.Warnings = append(res.Metadata.Warnings,
				fmt.Sprintf("project %s: %v", d.Name, listErr))
			unlistable[i] = true
			continue
		}
		for _, f := range files {
			jobs = append(jobs, fileJob{project: i, path: f})
		}
	}

	type fileResult struct {
		session model.Session
		err     error
	}
	results := make([]fileResult, len(jobs))

	if len(jobs) > 0 {
		numWorkers := runtime.GOMAXPROCS(0)
		if numWorkers < 1 {
			numWorkers = 4
		}
		if numWorkers > len(jobs) {
			numWorkers = len(jobs)
		}

		work := make(chan int, len(jobs))
		for i := range jobs {
			work <- i
		}
		close(work)

		var wg sync.WaitGroup
		var processed atomic.Int64

		wg.Add(numWorkers)
		for w := 0; w < numWorkers; w++ {
			go func() {
				defer wg.Done()
				for idx := range work {
					pr, parseErr := source.ParseFile(jobs[idx].path, s.Rates)
					if parseErr != nil {
						results[idx] = fileResult{err: parseErr}
					} else {
						results[idx] = fileResult{session: BuildSession(pr.Messages, jobs[idx].path).Session}
					}
					n := processed.Add(1)
					if s.Progress != nil {
						s.Progress(int(n), len(jobs))
					}
				}
			}()
		}
		wg.Wait()
	}

	sessionsByProject := make([][]model.Session, len(dirs))
	for i, r := range results {
		if r.err != nil {
			res.Metadata.Warnings = append(res.Metadata.Warnings,
				fmt.Sprintf("%s: %v", filepath.Base(jobs[i].path), r.err))
			continue
		}
		p := jobs[i].project
		sessionsByProject[p] = append(sessionsByProject[p], r.session)
	}

	for i, d := range dirs {
		if unlistable[i] {
			continue
		}
		res.Projects = append(res.Projects, buildProject(d, sessionsByProject[i]))
	}
	sortProjects(res.Projects)

	res.Success = true
	res.Metadata.ProjectCount = len(res.Projects)
	return res
}

// sortProjects orders projects by last activity, newest first, name
// breaking ties.
func sortProjects(projects []model.Project) {
	sort.Slice(projects, func(i, j int) bool {
		if projects[i].LastActivity != projects[j].LastActivity {
			return projects[i].LastActivity > projects[j].LastActivity
		}
		return projects[i].Name < projects[j].Name
	})
}

// ScanProject scans a single project directory, serially; per-project
// session counts are small. Zero session files yield an empty Project,
// not an error.
func (s *Scanner) ScanProject(dir string) (model.Project, error) {
	files, err := source.ListSessionFiles(dir)
	if err != nil {
		return model.Project{}, fmt.Errorf("listing %s: %w", dir, err)
	}

	name := filepath.Base(dir)
	pd := source.ProjectDir{Name: name, Dir: dir, Path: source.DecodeProjectPath(name)}

	var sessions []model.Session
	for _, f := range files {
		pr, parseErr := source.ParseFile(f, s.Rates)
		if parseErr != nil {
			continue // unreadable file, the project totals still stand
		}
		sessions = append(sessions, BuildSession(pr.Messages, f).Session)
	}

	return buildProject(pd, sessions), nil
}

// projectDir validates a project name and resolves it under the root.
// Names that are not a single path segment report model.ErrInvalidInput;
// an absent directory reports model.ErrNotFound.
func (s *Scanner) projectDir(projectName string) (string, error) {
	if strings.TrimSpace(projectName) == "" {
		return "", fmt.Errorf("project name required: %w", model.ErrInvalidInput)
	}
	// Project names are single path segments; anything else would
	// escape the projects root.
	if filepath.Base(projectName) != projectName || projectName == "." || projectName == ".." {
		return "", fmt.Errorf("invalid project name %q: %w", projectName, model.ErrInvalidInput)
	}

	dir := filepath.Join(s.Root, projectName)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("project %q: %w", projectName, model.ErrNotFound)
		}
		return "", fmt.Errorf("project %q: %w", projectName, err)
	}
	return dir, nil
}

// FindProject scans a single project by name.
func (s *Scanner) FindProject(projectName string) (model.Project, error) {
	dir, err := s.projectDir(projectName)
	if err != nil {
		return model.Project{}, err
	}
	return s.ScanProject(dir)
}

// FindSession locates one session by id within a project, scanning the
// project's files in filename order and returning the first whose
// records carry the identifier (or whose derived id matches). It
// validates its inputs before touching the filesystem and reports
// model.ErrNotFound rather than failing hard.
func (s *Scanner) FindSession(projectName, sessionID string) (model.SessionDetail, error) {
	if strings.TrimSpace(sessionID) == "" {
		return model.SessionDetail{}, fmt.Errorf("session id required: %w", model.ErrInvalidInput)
	}
	dir, err := s.projectDir(projectName)
	if err != nil {
		return model.SessionDetail{}, err
	}

	files, err := source.ListSessionFiles(dir)
	if err != nil {
		return model.SessionDetail{}, fmt.Errorf("listing %s: %w", dir, err)
	}

	for _, f := range files {
		if source.SessionIDFromFilename(f) == sessionID {
			pr, parseErr := source.ParseFile(f, s.Rates)
			if parseErr != nil {
				return model.SessionDetail{}, fmt.Errorf("reading %s: %w", filepath.Base(f), parseErr)
			}
			return BuildSession(pr.Messages, f), nil
		}
	}

	// Fall back to the records: a session may live in a file named
	// differently from its id.
	for _, f := range files {
		pr, parseErr := source.ParseFile(f, s.Rates)
		if parseErr != nil {
			continue
		}
		for _, m := range pr.Messages {
			if m.SessionID == sessionID {
				return BuildSession(pr.Messages, f), nil
			}
		}
	}

	return model.SessionDetail{}, fmt.Errorf("session %q in project %q: %w", sessionID, projectName, model.ErrNotFound)
}
