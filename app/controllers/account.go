package controllers

import (
	"context"
	"errors"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/services"
)

func (c *Console) register(ctx context.Context) error {
	name, err := c.promptRequired("Enter a username: ")
	if err != nil {
		return err
	}
	password, err := c.promptRequired("Enter a password: ")
	if err != nil {
		return err
	}

	sess, err := c.svc.Accounts.Register(ctx, name, password)
	if errors.Is(err, services.ErrCustomerExists) {
		c.println("Username already exists. Please choose a different username.")
		return nil
	}
	if err != nil {
		c.fail(ctx, err)
		return nil
	}

	c.session = sess
	c.printf("Welcome, %s! You are now logged in.\n", sess.Customer.Name)
	return nil
}

func (c *Console) login(ctx context.Context) error {
	for {
		name, err := c.promptRequired("Enter username: ")
		if err != nil {
			return err
		}
		password, err := c.prompt("Enter password: ")
		if err != nil {
			return err
		}

		sess, err := c.svc.Accounts.Login(ctx, name, password)
		if err == nil {
			c.session = sess
			c.printf("Welcome back, %s!\n", sess.Customer.Name)
			return nil
		}
		if !errors.Is(err, services.ErrInvalidCredentials) {
			c.fail(ctx, err)
			return nil
		}

		exists, err := c.svc.Accounts.Exists(ctx, name)
		if err != nil {
			c.fail(ctx, err)
			return nil
		}
		if !exists {
			c.printf("Customer %q does not exist.\n", name)
			ok, err := c.confirm("Do you want to register instead? (y/n) ")
			if err != nil || !ok {
				return err
			}
			return c.register(ctx)
		}

		c.println("Password incorrect.")
		ok, err := c.confirm("Do you want to try again? (y/n) ")
		if err != nil || !ok {
			return err
		}
	}
}

func (c *Console) account(ctx context.Context) error {
	view, err := c.svc.Accounts.Account(ctx, c.session)
	if err != nil {
		c.fail(ctx, err)
		return nil
	}

	c.printf("Customer: %s\n", view.Name)
	c.printf("Membership Status: %s\n", view.Tier)
	c.printf("Total Spent: %s SEK\n", money(view.TotalSpent))
	return nil
}
