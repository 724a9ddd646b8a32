package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"dasa.cc/minxr/xr"
)

func newExtensionsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "extensions",
		Short: "List the instance extensions the runtime supports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(o.sim, nil)
			if err != nil {
				return err
			}
			props, err := rt.EnumerateInstanceExtensionProperties()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			found := false
			for _, p := range props {
				fmt.Fprintf(w, "%s\t%d\n", p.Name, p.Version)
				found = found || p.Name == xr.OpenGLExtension
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("%w: %s", xr.ErrExtensionMissing, xr.OpenGLExtension)
			}
			return nil
		},
	}
}
