package core

import (
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/evilsocket/islazy/fs"
	"github.com/evilsocket/islazy/log"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

type repository struct {
	Local  string `yaml:"local"`
	Remote string `yaml:"remote"`
	HTTP   string `yaml:"http"`
}

// Publisher pushes the CSV report of a run to a git repository so reports can
// be shared with the rest of the team and diffed over time.
type Publisher struct {
	sync.Mutex

	Enabled    bool       `yaml:"enabled"`
	Repository repository `yaml:"repository"`

	repo *git.Repository
	tree *git.Worktree
}

func (p *Publisher) Init() (err error) {
	if !p.Enabled {
		return nil
	}

	if fs.Exists(p.Repository.Local) {
		// open local copy and pull
		if p.repo, err = git.PlainOpen(p.Repository.Local); err != nil {
			return fmt.Errorf("error while opening git repo %s: %v", p.Repository.Local, err)
		}

		if p.tree, err = p.repo.Worktree(); err != nil {
			return fmt.Errorf("error while getting working tree for git repo %s: %v", p.Repository.Local, err)
		}

		log.Info("updating %s from %s ...", p.Repository.Local, p.Repository.Remote)

		err = p.tree.Pull(&git.PullOptions{RemoteName: "origin"})
		if err != nil && err != git.NoErrAlreadyUpToDate {
			return fmt.Errorf("error while updating git repo %s: %v", p.Repository.Local, err)
		}
	} else {
		log.Info("cloning %s to %s ...", p.Repository.Remote, p.Repository.Local)

		p.repo, err = git.PlainClone(p.Repository.Local, false, &git.CloneOptions{
			URL:      p.Repository.Remote,
			Progress: os.Stdout,
		})
		if err != nil {
			return fmt.Errorf("error while cloning git repo %s to %s: %v", p.Repository.Remote, p.Repository.Local, err)
		}

		if p.tree, err = p.repo.Worktree(); err != nil {
			return fmt.Errorf("error while getting working tree for git repo %s: %v", p.Repository.Local, err)
		}
	}

	return nil
}

// OnReport copies the report file into the repository, commits and pushes it,
// returning the HTTP URL the published copy can be reached at.
func (p *Publisher) OnReport(reportFile string) (reportURL string, err error) {
	p.Lock()
	defer p.Unlock()

	if !p.Enabled {
		return "", nil
	}

	data, err := ioutil.ReadFile(reportFile)
	if err != nil {
		return "", fmt.Errorf("error reading %s: %v", reportFile, err)
	}

	fileBaseName := fmt.Sprintf("alerts_%s.csv", time.Now().Format("2006-01-02T15:04:05-0700"))
	fileName := path.Join(p.Repository.Local, fileBaseName)

	if err = ioutil.WriteFile(fileName, data, 0644); err != nil {
		return "", fmt.Errorf("error creating %s: %v", fileName, err)
	}

	log.Info("updating repository")

	if _, err = p.tree.Add(fileBaseName); err != nil {
		return "", fmt.Errorf("error while updating git repo %s: %v", p.Repository.Local, err)
	}

	_, err = p.tree.Commit("new alerts report", &git.CommitOptions{
		Author: &object.Signature{
			When: time.Now(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("error while committing to git repo %s: %v", p.Repository.Local, err)
	}

	if err = p.repo.Push(&git.PushOptions{}); err != nil {
		return "", fmt.Errorf("error while pushing git repo %s: %v", p.Repository.Local, err)
	}

	reportURL = p.Repository.HTTP
	if !strings.HasSuffix(reportURL, "/") {
		reportURL += "/"
	}

	return reportURL + fileBaseName, nil
}
