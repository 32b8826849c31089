// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/toeirei/keyman/internal/i18n"
	"github.com/toeirei/keyman/internal/sshkey"
)

// newAddCmd registers an existing private key.
func newAddCmd(a *app) *cobra.Command {
	var (
		name   string
		useKey bool
	)
	cmd := &cobra.Command{
		Use:     "add <PRIVATE_KEY_PATH>",
		Aliases: []string{"new"},
		Short:   "Add a new SSH key with an existing private key",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := a.registry.Add(args[0], name)
			if err != nil {
				return failure(name, err, "error.add_failed")
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, i18n.T("add.success", key.Name, usage("use", key.Name)))

			if useKey {
				if _, err := a.registry.Use(key.Name); err != nil {
					// keep the added key even though it could not be used
					if saveErr := a.save(); saveErr != nil {
						return saveErr
					}
					return failure(key.Name, err, "error.use_failed")
				}
				fmt.Fprintln(out, i18n.T("add.using", key.Name))
			}
			return a.save()
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "A name to identify the key by, default will be the file name")
	cmd.Flags().StringVar(&name, "save-as", "", "Alias for --name")
	cmd.Flags().BoolVarP(&useKey, "use", "u", false, "Immediately place this key in use after adding it")
	return cmd
}

// newUseCmd links a key into the SSH directory.
func newUseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "use <name>",
		Aliases: []string{"swap"},
		Short:   "Symlinks the related private key into the ~/.ssh folder",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := a.registry.Use(args[0])
			if err != nil {
				return failure(args[0], err, "error.use_failed")
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("use.success", key.Name))
			return a.save()
		},
	}
}

// newInfoCmd shows one key, or the active key when no name is given.
func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "info [name]",
		Aliases: []string{"show"},
		Short:   "Show information about a key or the currently active key",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, ok := a.registry.GetActive()
			if len(args) == 1 {
				var err error
				if key, err = a.registry.Get(args[0]); err != nil {
					return failure(args[0], err, "error.not_found")
				}
				ok = true
			}
			if !ok {
				return cmd.Help()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, i18n.T("info.header", nameStyle.Render(key.Name)))
			if key.PrivateKeyPath != "" {
				fmt.Fprintln(out, i18n.T("info.private", key.PrivateKeyPath))
			}
			if key.PublicKeyPath != "" {
				fmt.Fprintln(out, i18n.T("info.public", key.PublicKeyPath))
			}
			if key.OriginalPath != "" {
				fmt.Fprintln(out, labelStyle.Render(i18n.T("info.original", key.OriginalPath)))
			}

			if !a.registry.Materialized(key.Name) {
				fmt.Fprintln(out, i18n.T("info.pending"))
				return nil
			}
			details, err := sshkey.InspectFile(key.PrivateKeyPath)
			if err != nil {
				fmt.Fprintln(out, i18n.T("info.unreadable", err))
				return nil
			}
			if details.Algorithm != "" {
				fmt.Fprintln(out, i18n.T("info.type", details.Algorithm))
			}
			if details.Fingerprint != "" {
				fmt.Fprintln(out, i18n.T("info.fingerprint", details.Fingerprint))
			}
			if details.Encrypted {
				fmt.Fprintln(out, i18n.T("info.encrypted"))
			}
			return nil
		},
	}
}

// newRenameCmd changes a key's name; its files stay where they are.
func newRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rename <name> <new-name>",
		Aliases: []string{"mv"},
		Short:   "Rename a key to a new name",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := a.registry.Rename(args[0], args[1])
			if err != nil {
				return failure(args[0], err, "error.rename_failed")
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("rename.success", args[0], key.Name))
			return a.save()
		},
	}
}

// newRemoveCmd removes a key and erases its managed copy on save.
func newRemoveCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a key by name",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			out := cmd.OutOrStdout()

			if active, ok := a.registry.GetActive(); ok && active.Name == name && !force {
				if !stdinIsTerminal(cmd.InOrStdin()) {
					return newUserError(i18n.T("remove.in_use", name), nil)
				}
				if !confirm(cmd.InOrStdin(), out, i18n.T("remove.confirm", name)) {
					fmt.Fprintln(out, i18n.T("remove.cancelled"))
					return nil
				}
			}

			key, err := a.registry.Remove(name)
			if err != nil {
				return failure(name, err, "error.remove_failed")
			}
			fmt.Fprintln(out, i18n.T("remove.success", key.Name))
			return a.save()
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Force remove the key without confirmation when it is in use")
	return cmd
}

// newListCmd prints every key, marking the active one.
func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all keys",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			keys := a.registry.List()
			if len(keys) == 0 {
				fmt.Fprintln(out, i18n.T("list.empty", usage("add", "<PRIVATE_KEY_PATH>")))
				return nil
			}

			active, hasActive := a.registry.GetActive()
			fmt.Fprintln(out, i18n.T("list.header"))
			for _, key := range keys {
				line := "  - " + key.Name
				if hasActive && key.Name == active.Name {
					line += " " + activeStyle.Render(i18n.T("list.in_use"))
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}
