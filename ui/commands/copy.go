package commands

import (
	"errors"
	"os/exec"
	"runtime"
)

// clipboardCommand は OS ごとのクリップボード書き込みコマンドを返します
func clipboardCommand() (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("pbcopy"), nil
	case "linux":
		return exec.Command("xclip", "-selection", "clipboard"), nil
	case "windows":
		return exec.Command("clip"), nil
	default:
		return nil, errors.New("unsupported os")
	}
}

// CopyToClipboard copies text to system clipboard
func CopyToClipboard(text string) error {
	cmd, err := clipboardCommand()
	if err != nil {
		return err
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return err
	}

	if _, err := stdin.Write([]byte(text)); err != nil {
		return err
	}

	if err := stdin.Close(); err != nil {
		return err
	}

	return cmd.Wait()
}

// CopyFilePath copies the file path as given to clipboard
func CopyFilePath(filePath string) error {
	return CopyToClipboard(filePath)
}
