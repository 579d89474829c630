package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophchat/internal/client/chat"
)

// Chat sends prompt to the AI backend and prints the answer. Without a
// prompt it shows the sample prompts on an empty transcript and reads a
// multi-line prompt.
func (a *App) Chat(ctx context.Context, prompt string) error {
	return a.protected(ctx, "chat", func(ctx context.Context) error {
		if prompt == "" {
			if len(a.chat.Transcript()) == 0 {
				_ = a.Prompts(ctx)
			}
			var err error
			prompt, err = GetMultiline(a.reader, "Enter a prompt here", a.out)
			if err != nil {
				return err
			}
		}

		reply, err := a.chat.Send(ctx, prompt)
		switch {
		case errors.Is(err, chat.ErrEmptyPrompt):
			return nil
		case errors.Is(err, chat.ErrBusy):
			printlnFn("Still waiting for the previous answer.")
			return err
		case err != nil:
			return err
		}

		printlnFn(promptStyle.Render("model:"), reply.Content)
		return nil
	})
}

// Prompts lists the sample prompts.
func (a *App) Prompts(ctx context.Context) error {
	for i, p := range chat.SamplePrompts {
		printlnFn(fmt.Sprintf("%d. %s", i+1, p))
	}
	return nil
}
