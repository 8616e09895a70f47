package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/darzi/internal/backup"
	"github.com/mesh-intelligence/darzi/internal/paths"
	"github.com/mesh-intelligence/darzi/pkg/darzi"
)

func newBackupCmd(a *app) *cobra.Command {
	var (
		out    string
		upload bool
	)
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write every record to a JSON backup file",
		Long: `Backup writes backup_<date>.json to --out, or to backup_dir from the
config, or to the data directory. With --upload the file is also copied to
the S3 bucket named by s3.bucket.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			dataDir, err := a.dataDir()
			if err != nil {
				return err
			}
			dir, err := paths.ResolveBackupDir(out, a.v.GetString(cfgKeyBackupDir), dataDir)
			if err != nil {
				return fmt.Errorf("resolve backup dir: %w", err)
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create backup dir: %w", err)
			}

			exp := backup.NewExporter(store, darzi.Version)
			doc, err := exp.ExportAll()
			if err != nil {
				return err
			}
			path, err := exp.WriteFile(dir, doc)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "backup written: %s (%d customers, %d waskat)\n",
				path, len(doc.Customers), len(doc.Waskat))

			if !upload {
				return nil
			}
			uploader, err := backup.NewS3Uploader(cmd.Context(), s3Config(a.v))
			if err != nil {
				return err
			}
			body, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			name := filepath.Base(path)
			if err := uploader.Upload(cmd.Context(), name, body); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "uploaded: %s\n", uploader.Key(name))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "directory for the backup file")
	cmd.Flags().BoolVar(&upload, "upload", false, "also upload the file to S3")
	return cmd
}
