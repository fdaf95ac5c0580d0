package git

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// FindRepoRoot はパスを含む Git リポジトリのルートを返す
func FindRepoRoot(startPath string) (string, error) {
	repo, err := git.PlainOpenWithOptions(startPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("failed to open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}

	return wt.Filesystem.Root(), nil
}

// CurrentBranch はパスを含むリポジトリの現在のブランチ名を返す。
// detached HEAD のときは短縮ハッシュを返す
func CurrentBranch(startPath string) (string, error) {
	repo, err := git.PlainOpenWithOptions(startPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("failed to open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}

	if head.Name().IsBranch() {
		return head.Name().Short(), nil
	}
	return head.Hash().String()[:7], nil
}

// GetFileAtRef は指定したリビジョンでのファイル内容を返す。
// filePath はリポジトリルートからの相対パス
func GetFileAtRef(repoPath, filePath, ref string) (string, error) {
	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("failed to open repository: %w", err)
	}

	// リビジョンをコミットに解決する
	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return "", fmt.Errorf("failed to resolve revision %s: %w", ref, err)
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return "", fmt.Errorf("failed to get commit object: %w", err)
	}

	file, err := commit.File(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to find %s at %s: %w", filePath, ref, err)
	}

	return file.Contents()
}
