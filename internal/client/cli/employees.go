package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"employee-directory/internal/client"
	"employee-directory/internal/model"
)

const dateLayout = "2006-01-02"

func (a *App) home(ctx context.Context) {
	recent, err := a.client.RecentEmployees(ctx)
	if err != nil {
		a.report(err)
		return
	}

	a.println("Welcome, " + a.client.Session().Username)
	if len(recent) == 0 {
		a.println("No recent activity.")
		return
	}
	a.println("Recently added:")
	a.table(recent)
}

func (a *App) list(ctx context.Context, args []string) {
	page := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			a.println("Usage: list [page]")
			return
		}
		page = n
	}

	employees, err := a.client.ListEmployees(ctx)
	if err != nil {
		a.report(err)
		return
	}

	items, pages := client.Paginate(employees, page, a.pageSize)
	page = max(1, min(page, pages))
	if len(items) == 0 {
		a.println("No employees.")
		return
	}
	a.table(items)
	fmt.Fprintf(a.out, "Page %d of %d (%d employees)\n", page, pages, len(employees))
}

func (a *App) table(employees []model.Employee) {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tMOBILE\tDESIGNATION\tGENDER\tCOURSE\tCREATED")
	for _, e := range employees {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Name, e.Email, e.Mobile, e.Designation, e.Gender, e.Course, e.CreatedDate.Format(dateLayout))
	}
	w.Flush()
}

func (a *App) show(ctx context.Context, args []string) {
	if len(args) == 0 {
		a.println("Usage: show <id>")
		return
	}

	e, err := a.client.GetEmployee(ctx, args[0])
	if err != nil {
		a.report(err)
		return
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 1, ' ', 0)
	fmt.Fprintf(w, "ID:\t%s\n", e.ID)
	fmt.Fprintf(w, "Name:\t%s\n", e.Name)
	fmt.Fprintf(w, "Email:\t%s\n", e.Email)
	fmt.Fprintf(w, "Mobile:\t%s\n", e.Mobile)
	fmt.Fprintf(w, "Designation:\t%s\n", e.Designation)
	fmt.Fprintf(w, "Gender:\t%s\n", e.Gender)
	fmt.Fprintf(w, "Course:\t%s\n", e.Course)
	fmt.Fprintf(w, "Created:\t%s\n", e.CreatedDate.Format(dateLayout))
	fmt.Fprintf(w, "Image:\t%d bytes (%s)\n", len(e.Image), http.DetectContentType(e.Image))
	w.Flush()
}

func (a *App) add(ctx context.Context) {
	var in model.EmployeeInput
	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"Name", &in.Name},
		{"Email", &in.Email},
		{"Mobile", &in.Mobile},
		{"Designation", &in.Designation},
		{"Gender (M/F)", &in.Gender},
		{"Course", &in.Course},
		{"Created date (YYYY-MM-DD, empty for today)", &in.CreatedDate},
	} {
		v, err := GetSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			a.report(err)
			return
		}
		*f.dst = v
	}
	if in.CreatedDate == "" {
		in.CreatedDate = time.Now().Format(dateLayout)
	}

	path, err := GetSimpleText(a.reader, "Image file", a.out)
	if err != nil {
		a.report(err)
		return
	}
	var imageName string
	if path != "" {
		if in.Image, err = os.ReadFile(path); err != nil {
			a.report(err)
			return
		}
		imageName = filepath.Base(path)
	}

	e, err := a.client.CreateEmployee(ctx, in, imageName)
	if err != nil {
		a.report(err)
		return
	}
	a.println("Employee added successfully!")
	a.println("ID:", e.ID)
}

func (a *App) edit(ctx context.Context, args []string) {
	if len(args) == 0 {
		a.println("Usage: edit <id>")
		return
	}

	current, err := a.client.GetEmployee(ctx, args[0])
	if err != nil {
		a.report(err)
		return
	}

	a.println("Press Enter to keep the current value.")
	var upd model.EmployeeUpdate
	for _, f := range []struct {
		prompt  string
		current string
		dst     **string
	}{
		{"Name", current.Name, &upd.Name},
		{"Email", current.Email, &upd.Email},
		{"Mobile", current.Mobile, &upd.Mobile},
		{"Designation", current.Designation, &upd.Designation},
		{"Gender", current.Gender, &upd.Gender},
		{"Course", current.Course, &upd.Course},
		{"Created date", current.CreatedDate.Format(dateLayout), &upd.CreatedDate},
	} {
		v, err := GetOptionalText(a.reader, f.prompt, f.current, a.out)
		if err != nil {
			a.report(err)
			return
		}
		*f.dst = v
	}

	path, err := GetSimpleText(a.reader, "New image file (empty to keep)", a.out)
	if err != nil {
		a.report(err)
		return
	}
	var imageName string
	if path != "" {
		if upd.Image, err = os.ReadFile(path); err != nil {
			a.report(err)
			return
		}
		imageName = filepath.Base(path)
	}

	if _, err := a.client.UpdateEmployee(ctx, current.ID, upd, imageName); err != nil {
		a.report(err)
		return
	}
	a.println("Employee updated successfully!")
}

func (a *App) delete(ctx context.Context, args []string) {
	if len(args) == 0 {
		a.println("Usage: delete <id>")
		return
	}

	answer, err := GetSimpleText(a.reader, "Delete employee "+args[0]+"? (y/N)", a.out)
	if err != nil {
		a.report(err)
		return
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		a.println("Cancelled")
		return
	}

	if err := a.client.DeleteEmployee(ctx, args[0]); err != nil {
		a.report(err)
		return
	}
	a.println("Employee deleted")
}
