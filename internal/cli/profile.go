package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kaenlabs/parallel-self-simulator/internal/model"
	"github.com/kaenlabs/parallel-self-simulator/internal/store"
)

var errNoProfile = errors.New("a profile ID argument or --owner is required")

func init() {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage simulated characters",
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a character",
		Run:   runProfileCreate,
	}
	addTraitFlags(create)
	create.Flags().StringP("owner", "o", "", "Owner ID (default: the new profile's ID)")
	for _, f := range []string{"name", "trait", "weakness", "talent", "goal"} {
		create.MarkFlagRequired(f)
	}

	show := &cobra.Command{
		Use:   "show [PROFILE_ID]",
		Short: "Show a character",
		Args:  cobra.MaximumNArgs(1),
		Run:   runProfileShow,
	}
	addOwnerFlag(show)

	update := &cobra.Command{
		Use:   "update [PROFILE_ID]",
		Short: "Edit traits (recomputes the seed)",
		Long:  "Edit traits. Any trait change recomputes the seed, so later days follow the new traits.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runProfileUpdate,
	}
	addTraitFlags(update)
	addOwnerFlag(update)

	list := &cobra.Command{
		Use:   "list",
		Short: "List characters",
		Run:   runProfileList,
	}
	list.Flags().StringP("status", "s", "", "Filter by status: ACTIVE, PAUSED or COMPLETED")
	list.Flags().IntP("limit", "l", 0, "Max results")

	rm := &cobra.Command{
		Use:   "rm [PROFILE_ID]",
		Short: "Delete a character with its history",
		Args:  cobra.MaximumNArgs(1),
		Run:   runProfileRm,
	}
	addOwnerFlag(rm)

	profileCmd.AddCommand(create, show, update, list, rm,
		statusCommand("pause", "Pause daily generation", model.StatusPaused),
		statusCommand("resume", "Resume daily generation", model.StatusActive),
		statusCommand("complete", "Mark a character's story as finished", model.StatusCompleted),
	)
	RootCmd.AddCommand(profileCmd)
}

func addTraitFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Character name")
	cmd.Flags().String("trait", "", "Main trait")
	cmd.Flags().String("weakness", "", "Weakness")
	cmd.Flags().String("talent", "", "Talent")
	cmd.Flags().String("goal", "", "Daily goal")
}

func addOwnerFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("owner", "o", "", "Select the profile by owner ID")
}

func resolveProfile(ctx context.Context, cmd *cobra.Command, s store.Store, args []string) (*model.Profile, error) {
	owner, _ := cmd.Flags().GetString("owner")
	switch {
	case owner != "":
		return s.GetProfileByOwner(ctx, owner)
	case len(args) > 0:
		return s.GetProfile(ctx, args[0])
	default:
		return nil, errNoProfile
	}
}

func statusCommand(use, short string, status model.Status) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [PROFILE_ID]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			s, err := openStore()
			if err != nil {
				exitErr("open store", err)
			}
			defer s.Close()

			p, err := resolveProfile(cmd.Context(), cmd, s, args)
			if err != nil {
				exitErr(use, err)
			}
			p, err = s.UpdateProfile(cmd.Context(), p.ID, store.UpdateProfileParams{Status: status})
			if err != nil {
				exitErr(use, err)
			}
			output(cmd, p, func(w io.Writer) { renderProfile(w, p) })
		},
	}
	addOwnerFlag(cmd)
	return cmd
}

func runProfileCreate(cmd *cobra.Command, args []string) {
	owner, _ := cmd.Flags().GetString("owner")
	name, _ := cmd.Flags().GetString("name")
	trait, _ := cmd.Flags().GetString("trait")
	weakness, _ := cmd.Flags().GetString("weakness")
	talent, _ := cmd.Flags().GetString("talent")
	goal, _ := cmd.Flags().GetString("goal")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	p, err := s.CreateProfile(cmd.Context(), store.CreateProfileParams{
		OwnerID:       owner,
		CharacterName: name,
		MainTrait:     trait,
		Weakness:      weakness,
		Talent:        talent,
		DailyGoal:     goal,
	})
	if err != nil {
		exitErr("create profile", err)
	}
	output(cmd, p, func(w io.Writer) { renderProfile(w, p) })
}

func runProfileShow(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	p, err := resolveProfile(cmd.Context(), cmd, s, args)
	if err != nil {
		exitErr("show", err)
	}
	output(cmd, p, func(w io.Writer) { renderProfile(w, p) })
}

func runProfileUpdate(cmd *cobra.Command, args []string) {
	name, _ := cmd.Flags().GetString("name")
	trait, _ := cmd.Flags().GetString("trait")
	weakness, _ := cmd.Flags().GetString("weakness")
	talent, _ := cmd.Flags().GetString("talent")
	goal, _ := cmd.Flags().GetString("goal")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	p, err := resolveProfile(cmd.Context(), cmd, s, args)
	if err != nil {
		exitErr("update", err)
	}
	p, err = s.UpdateProfile(cmd.Context(), p.ID, store.UpdateProfileParams{
		CharacterName: name,
		MainTrait:     trait,
		Weakness:      weakness,
		Talent:        talent,
		DailyGoal:     goal,
	})
	if err != nil {
		exitErr("update", err)
	}
	output(cmd, p, func(w io.Writer) { renderProfile(w, p) })
}

func runProfileList(cmd *cobra.Command, args []string) {
	status, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	profiles, err := s.ListProfiles(cmd.Context(), store.ListProfilesParams{
		Status: model.Status(status),
		Limit:  limit,
	})
	if err != nil {
		exitErr("list", err)
	}
	output(cmd, profiles, func(w io.Writer) {
		for i := range profiles {
			renderProfileLine(w, &profiles[i])
		}
	})
}

func runProfileRm(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	p, err := resolveProfile(cmd.Context(), cmd, s, args)
	if err != nil {
		exitErr("rm", err)
	}
	if err := s.DeleteProfile(cmd.Context(), p.ID); err != nil {
		exitErr("rm", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q}`+"\n", p.ID)
}
