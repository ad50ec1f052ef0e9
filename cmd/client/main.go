// Package main is a command-line reader for the portfolio API. Each command
// prints the same view the web pages render, falling back to placeholder
// content with an error banner when the API cannot be reached.
package main

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pngalemo/portfolio/internal/client"
	"github.com/pngalemo/portfolio/internal/models"
	"github.com/pngalemo/portfolio/internal/web"
)

var (
	version   string
	buildDate string
)

// errFallback marks a command that printed fallback content.
var errFallback = errors.New("showing fallback content")

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	var (
		apiURL  string
		timeout time.Duration
	)

	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Read the portfolio API from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&apiURL, "api",
		cmp.Or(os.Getenv("API_BASE_URL"), "http://localhost:5001/api"), "API base URL")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")

	newClient := func() *client.Client {
		return client.New(apiURL, timeout)
	}

	root.AddCommand(
		newAboutCmd(newClient),
		newProjectsCmd(newClient),
		newResumeCmd(newClient),
		newContactCmd(newClient),
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "Portfolio Client\nVersion: %s\nBuild date: %s\n",
					cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A"))
			},
		},
	)
	return root
}

func newAboutCmd(newClient func() *client.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "about",
		Short: "Show the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := newClient().LoadAbout(cmd.Context())
			printAbout(cmd.OutOrStdout(), v.Data)
			return banner(cmd, v.Banner)
		},
	}
}

func newProjectsCmd(newClient func() *client.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List the projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := newClient().LoadProjects(cmd.Context())
			printProjects(cmd.OutOrStdout(), v.Data, v.Failed())
			return banner(cmd, v.Banner)
		},
	}
}

func newResumeCmd(newClient func() *client.Client) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Show the resume grouped by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := newClient().LoadResume(cmd.Context(), models.Category(category))
			printResume(cmd.OutOrStdout(), v.Data, v.Failed())
			return banner(cmd, v.Banner)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only show one category (Experience, Education, Skill, Certification, Award)")
	return cmd
}

func newContactCmd(newClient func() *client.Client) *cobra.Command {
	var sub models.ContactSubmission
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message through the contact form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sub.Name = strings.TrimSpace(sub.Name)
			sub.Email = strings.TrimSpace(sub.Email)
			sub.Message = strings.TrimSpace(sub.Message)
			if sub.Name == "" || sub.Email == "" || sub.Message == "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "Please fill in all fields.")
				return errors.New("contact: missing fields")
			}

			res, err := newClient().SubmitContact(cmd.Context(), sub)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), res.Message)
				return errors.Wrap(err, "contact")
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&sub.Name, "name", "", "your name")
	cmd.Flags().StringVar(&sub.Email, "email", "", "your email address")
	cmd.Flags().StringVar(&sub.Message, "message", "", "message text")
	return cmd
}

// banner prints msg to stderr and fails the command when it is set.
func banner(cmd *cobra.Command, msg string) error {
	if msg == "" {
		return nil
	}
	fmt.Fprintln(cmd.ErrOrStderr(), msg)
	return errFallback
}

func printAbout(w io.Writer, p models.Profile) {
	fmt.Fprintln(w, p.Name)
	if p.Tagline != "" {
		fmt.Fprintln(w, p.Tagline)
	}
	fmt.Fprintf(w, "\n%s\n\n", p.Bio)
	for _, line := range [][2]string{{"Email", p.Email}, {"Phone", p.Phone}, {"Location", p.Location}} {
		if line[1] != "" {
			fmt.Fprintf(w, "%-9s %s\n", line[0]+":", line[1])
		}
	}
	for _, l := range p.SocialLinks {
		fmt.Fprintf(w, "%-9s %s\n", l.Platform+":", l.URL)
	}
	if len(p.Skills) > 0 {
		fmt.Fprintln(w, "\nSkills")
		for _, s := range p.Skills {
			if s.Level != "" {
				fmt.Fprintf(w, "  %s (%s)\n", s.Name, s.Level)
			} else {
				fmt.Fprintf(w, "  %s\n", s.Name)
			}
		}
	}
}

func printProjects(w io.Writer, projects []models.Project, failed bool) {
	if len(projects) == 0 {
		if !failed {
			fmt.Fprintln(w, "No projects to display yet. Check back soon!")
		}
		return
	}
	for i, p := range projects {
		if i > 0 {
			fmt.Fprintln(w)
		}
		title := p.Title
		if p.Featured {
			title += " [Featured]"
		}
		fmt.Fprintln(w, title)
		if dates := web.ProjectDates(p.StartDate, p.EndDate); dates != "" {
			fmt.Fprintf(w, "  %s\n", dates)
		}
		fmt.Fprintf(w, "  %s\n", p.Description)
		if len(p.Technologies) > 0 {
			fmt.Fprintf(w, "  Tech: %s\n", strings.Join(p.Technologies, ", "))
		}
		if p.ProjectURL != "" {
			fmt.Fprintf(w, "  Live: %s\n", p.ProjectURL)
		}
		if p.SourceCodeURL != "" {
			fmt.Fprintf(w, "  Code: %s\n", p.SourceCodeURL)
		}
	}
}

func printResume(w io.Writer, items []models.ResumeItem, failed bool) {
	if len(items) == 0 {
		if !failed {
			fmt.Fprintln(w, "No resume information available yet.")
		}
		return
	}
	for i, sec := range web.GroupResume(items) {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, sec.Heading)
		for _, it := range sec.Items {
			if it.Category == models.CategorySkill {
				fmt.Fprintf(w, "  %s", it.SkillName)
				if it.SkillLevel != "" {
					fmt.Fprintf(w, " (%s)", it.SkillLevel)
				}
				fmt.Fprintln(w)
				continue
			}
			line := it.Title
			if it.Organization != "" {
				line += ", " + it.Organization
			}
			fmt.Fprintf(w, "  %s\n", line)
			if dates := web.ResumeDates(it.StartDate, it.EndDate); dates != "" {
				fmt.Fprintf(w, "    %s\n", dates)
			}
			if gpa := web.FormatGPA(it.GPA); gpa != "" {
				fmt.Fprintf(w, "    GPA: %s\n", gpa)
			}
			for _, d := range it.Details {
				fmt.Fprintf(w, "    - %s\n", d)
			}
		}
	}
}
