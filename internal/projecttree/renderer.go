package projecttree

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	// directoryMarker follows every directory name in the rendered output.
	directoryMarker = "/"

	errorPathNotFoundFormat = "%w: %s"

	debugPrunedDirectoryMessage  = "pruned ignored directory"
	debugSkippedFileMessage      = "skipped ignored file"
	debugVisitedDirectoryMessage = "visited directory"
	debugSymlinkTargetMessage    = "unable to resolve symbolic link target"

	pathLogKey  = "path"
	depthLogKey = "depth"
	filesLogKey = "files"
)

// Renderer walks a directory hierarchy and produces indented lines for every entry that survives the ignore rules.
type Renderer struct {
	fileSystem afero.Fs
	logger     *zap.Logger
}

// NewRenderer binds a renderer to fileSystem. A nil fileSystem selects the host filesystem
// and a nil logger discards diagnostics.
func NewRenderer(fileSystem afero.Fs, logger *zap.Logger) *Renderer {
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{fileSystem: fileSystem, logger: logger}
}

// directoryListing holds the surviving children of one directory.
type directoryListing struct {
	subdirectories []string
	displayOrder   []listedEntry
}

type listedEntry struct {
	name        string
	isDirectory bool
}

// Render returns the lines describing the tree rooted at rootPath.
// The first line is always the root followed by a directory marker; the root is never tested
// against rules. Directories matched by rules are pruned before descent. A missing root yields
// ErrPathNotFound and a filesystem failure during the walk yields a *TraversalError; in both
// cases no lines are returned.
func (renderer *Renderer) Render(rootPath string, rules IgnoreRuleSet, style IndentStyle) ([]string, error) {
	if rootPath == "" {
		return nil, fmt.Errorf(errorPathNotFoundFormat, ErrPathNotFound, rootPath)
	}
	displayRoot := strings.TrimRight(rootPath, string(filepath.Separator))
	walkRoot := displayRoot
	if walkRoot == "" {
		walkRoot = string(filepath.Separator)
	}

	rootInfo, rootStatError := renderer.fileSystem.Stat(walkRoot)
	if rootStatError != nil {
		if isMissingPath(rootStatError) {
			return nil, fmt.Errorf(errorPathNotFoundFormat, ErrPathNotFound, rootPath)
		}
		return nil, &TraversalError{Path: walkRoot, Err: rootStatError}
	}

	lines := []string{displayRoot + directoryMarker}
	if !rootInfo.IsDir() {
		return lines, nil
	}

	renderedLines, walkError := renderer.walkDirectory(walkRoot, 0, rules, style, lines)
	if walkError != nil {
		return nil, walkError
	}
	return renderedLines, nil
}

// walkDirectory appends the header and files of directoryPath to lines, then descends into its surviving subdirectories.
func (renderer *Renderer) walkDirectory(directoryPath string, depth int, rules IgnoreRuleSet, style IndentStyle, lines []string) ([]string, error) {
	listing, listError := renderer.listDirectory(directoryPath, rules)
	if listError != nil {
		return nil, listError
	}

	if depth > 0 {
		lines = append(lines, style.Prefix(depth)+filepath.Base(directoryPath)+directoryMarker)
	}

	filePrefix := style.Prefix(depth + 1)
	displayedFiles := 0
	for _, entry := range listing.displayOrder {
		if entry.isDirectory {
			continue
		}
		lines = append(lines, filePrefix+entry.name)
		displayedFiles++
	}
	renderer.logger.Debug(debugVisitedDirectoryMessage,
		zap.String(pathLogKey, directoryPath),
		zap.Int(depthLogKey, depth),
		zap.Int(filesLogKey, displayedFiles),
	)

	for _, subdirectoryPath := range listing.subdirectories {
		var walkError error
		lines, walkError = renderer.walkDirectory(subdirectoryPath, depth+1, rules, style, lines)
		if walkError != nil {
			return nil, walkError
		}
	}
	return lines, nil
}

// listDirectory partitions the children of directoryPath after applying rules.
// Symbolic links are never descended; a link resolving to a directory is sorted
// with directories and is therefore never displayed.
func (renderer *Renderer) listDirectory(directoryPath string, rules IgnoreRuleSet) (directoryListing, error) {
	entries, readDirectoryError := afero.ReadDir(renderer.fileSystem, directoryPath)
	if readDirectoryError != nil {
		return directoryListing{}, &TraversalError{Path: directoryPath, Err: readDirectoryError}
	}

	var listing directoryListing
	for _, entry := range entries {
		childPath := filepath.Join(directoryPath, entry.Name())
		isSymlink := entry.Mode()&os.ModeSymlink != 0
		isDirectory := entry.IsDir()
		if isSymlink {
			isDirectory = renderer.resolvesToDirectory(childPath)
		}

		if ShouldIgnore(childPath, rules) {
			if isDirectory {
				renderer.logger.Debug(debugPrunedDirectoryMessage, zap.String(pathLogKey, childPath))
			} else {
				renderer.logger.Debug(debugSkippedFileMessage, zap.String(pathLogKey, childPath))
			}
			continue
		}

		if isDirectory && !isSymlink {
			listing.subdirectories = append(listing.subdirectories, childPath)
		}
		listing.displayOrder = append(listing.displayOrder, listedEntry{name: entry.Name(), isDirectory: isDirectory})
	}

	sort.SliceStable(listing.displayOrder, func(left, right int) bool {
		return listing.displayOrder[left].name < listing.displayOrder[right].name
	})
	return listing, nil
}

func (renderer *Renderer) resolvesToDirectory(linkPath string) bool {
	targetInfo, statError := renderer.fileSystem.Stat(linkPath)
	if statError != nil {
		renderer.logger.Debug(debugSymlinkTargetMessage, zap.String(pathLogKey, linkPath), zap.Error(statError))
		return false
	}
	return targetInfo.IsDir()
}

// isMissingPath reports whether statError means the path is absent, including a file used as a directory component.
func isMissingPath(statError error) bool {
	return errors.Is(statError, fs.ErrNotExist) || errors.Is(statError, syscall.ENOTDIR)
}
