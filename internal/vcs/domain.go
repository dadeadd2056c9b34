package vcs

// MainBranch is the protected default branch every repository carries.
const MainBranch = "main"

// SystemAuthor attributes synthetic commits (merge summaries) that no user wrote.
const SystemAuthor = "System"

// File is a branch-local text file. Branches never share File values:
// every branch-crossing operation clones.
type File struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Info    string `json:"info"`
	Date    string `json:"date"`
}

func (f File) Clone() File {
	return f
}

// Commit is an immutable, append-only change record. Timestamp is epoch
// milliseconds and may be zero for synthetic or legacy commits, which then
// sort as infinitely old in the graph projection.
type Commit struct {
	Message   string   `json:"message"`
	Author    string   `json:"author"`
	Date      string   `json:"date"`
	Branch    string   `json:"branch,omitempty"`
	Timestamp int64    `json:"timestamp,omitempty"`
	Files     []string `json:"files,omitempty"`
}

func (c Commit) Clone() Commit {
	out := c
	if c.Files != nil {
		out.Files = make([]string, len(c.Files))
		copy(out.Files, c.Files)
	}
	return out
}

// sameEvent reports whether two commits describe the same event. This is the
// duplicate guard used when copying commits between the aggregate log and a
// branch log, and by the merge engine.
func (c Commit) sameEvent(other Commit) bool {
	return c.Message == other.Message &&
		c.Author == other.Author &&
		c.Date == other.Date
}

// Branch is an isolated line of development owning its own file snapshot and
// commit list. Parent is the branch it was created from, empty for main.
type Branch struct {
	Name    string   `json:"name"`
	Parent  string   `json:"parent"`
	Current bool     `json:"current"`
	Files   []File   `json:"files"`
	Commits []Commit `json:"commits"`
}

func (b Branch) Clone() Branch {
	out := b
	if b.Files != nil {
		out.Files = make([]File, len(b.Files))
		for i, f := range b.Files {
			out.Files[i] = f.Clone()
		}
	}
	if b.Commits != nil {
		out.Commits = make([]Commit, len(b.Commits))
		for i, c := range b.Commits {
			out.Commits[i] = c.Clone()
		}
	}
	return out
}

// hasCommit reports whether the branch log already holds the given event.
func (b *Branch) hasCommit(c Commit) bool {
	for _, existing := range b.Commits {
		if existing.sameEvent(c) {
			return true
		}
	}
	return false
}

// Repository is one hosted repository. Branches are the single source of
// truth for files; Commits is the repository-level aggregate log, which also
// receives commits recorded against branch names that do not (or no longer)
// exist.
type Repository struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	CreatedDate   string   `json:"createdDate"`
	IsPrivate     bool     `json:"isPrivate"`
	CurrentBranch string   `json:"currentBranch"`
	Branches      []Branch `json:"branches"`
	Commits       []Commit `json:"commits"`
}

func (r Repository) Clone() Repository {
	out := r
	if r.Branches != nil {
		out.Branches = make([]Branch, len(r.Branches))
		for i, b := range r.Branches {
			out.Branches[i] = b.Clone()
		}
	}
	if r.Commits != nil {
		out.Commits = make([]Commit, len(r.Commits))
		for i, c := range r.Commits {
			out.Commits[i] = c.Clone()
		}
	}
	return out
}

// Branch returns the named branch, or nil.
func (r *Repository) Branch(name string) *Branch {
	for i := range r.Branches {
		if r.Branches[i].Name == name {
			return &r.Branches[i]
		}
	}
	return nil
}

// current returns the active branch. Exactly one branch carries the Current
// flag once the repository is initialized; hydrated data that violates this
// is repaired lazily instead of rejected, falling back to CurrentBranch,
// then main, then the first branch. Nil only when the branch list is empty.
func (r *Repository) current() *Branch {
	for i := range r.Branches {
		if r.Branches[i].Current {
			return &r.Branches[i]
		}
	}
	if b := r.Branch(r.CurrentBranch); b != nil {
		b.Current = true
		return b
	}
	if b := r.Branch(MainBranch); b != nil {
		b.Current = true
		r.CurrentBranch = MainBranch
		return b
	}
	if len(r.Branches) > 0 {
		b := &r.Branches[0]
		b.Current = true
		r.CurrentBranch = b.Name
		return b
	}
	return nil
}

// ensureBranches lazily creates the implicit main branch on repositories
// hydrated from data that predates branch support.
func (r *Repository) ensureBranches() {
	if len(r.Branches) != 0 {
		return
	}
	r.Branches = []Branch{{
		Name:    MainBranch,
		Parent:  "",
		Current: true,
		Files:   []File{},
		Commits: []Commit{},
	}}
	if r.CurrentBranch == "" {
		r.CurrentBranch = MainBranch
	}
}

// CurrentFiles returns an owned copy of the active branch's file set. This
// is the repository-level "files" view the dashboard renders.
func (r *Repository) CurrentFiles() []File {
	cur := r.current()
	if cur == nil || cur.Files == nil {
		return []File{}
	}
	out := make([]File, len(cur.Files))
	for i, f := range cur.Files {
		out[i] = f.Clone()
	}
	return out
}

// MergeResult summarizes one merge pass.
type MergeResult struct {
	FilesAdded   int `json:"filesAdded"`
	FilesUpdated int `json:"filesUpdated"`
	CommitsAdded int `json:"commitsAdded"`
}
