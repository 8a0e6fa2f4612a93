package cli

import "context"

func (a *App) register(ctx context.Context) {
	if a.isLoggedIn() {
		a.println("You are already logged in.")
		return
	}

	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		a.report(err)
		return
	}
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		a.report(err)
		return
	}
	password, err := GetPassword(a.out)
	if err != nil {
		a.report(err)
		return
	}

	if err := a.client.Signup(ctx, username, email, password); err != nil {
		a.report(err)
		return
	}
	a.println("Registration successful")
	a.home(ctx)
}

func (a *App) login(ctx context.Context) {
	if a.isLoggedIn() {
		a.println("You are already logged in.")
		return
	}

	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		a.report(err)
		return
	}
	password, err := GetPassword(a.out)
	if err != nil {
		a.report(err)
		return
	}

	if err := a.client.Login(ctx, email, password); err != nil {
		a.report(err)
		return
	}
	a.println("Login successful")
	a.home(ctx)
}

func (a *App) logout() {
	if err := a.client.Logout(); err != nil {
		a.report(err)
		return
	}
	a.println("Logged out")
}
