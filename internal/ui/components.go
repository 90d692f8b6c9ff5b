package ui

import (
	twmerge "github.com/Oudwins/tailwind-merge-go"
)

const (
	buttonBase = "inline-flex items-center justify-center rounded-md px-4 py-2 text-sm font-medium transition-colors disabled:opacity-50"
	inputBase  = "block w-full rounded-md border border-stone-300 px-3 py-2 text-sm focus:border-stone-900 focus:outline-none"
	cardBase   = "rounded-lg border border-stone-200 bg-white shadow-sm overflow-hidden"
)

var buttonVariants = map[string]string{
	"primary":   "bg-stone-900 text-white hover:bg-stone-700",
	"secondary": "bg-stone-100 text-stone-900 hover:bg-stone-200",
	"ghost":     "bg-transparent text-stone-700 hover:bg-stone-100 px-2",
}

// ButtonClass merges the base button classes with a variant and overrides.
func ButtonClass(variant string, extra ...string) string {
	return twmerge.Merge(append([]string{buttonBase, buttonVariants[variant]}, extra...)...)
}

func InputClass(extra ...string) string {
	return twmerge.Merge(append([]string{inputBase}, extra...)...)
}

func CardClass(extra ...string) string {
	return twmerge.Merge(append([]string{cardBase}, extra...)...)
}

var flashClasses = map[string]string{
	"success": "border-green-300 bg-green-50 text-green-800",
	"info":    "border-sky-300 bg-sky-50 text-sky-800",
	"warning": "border-amber-300 bg-amber-50 text-amber-800",
	"error":   "border-red-300 bg-red-50 text-red-800",
}

func FlashClass(category string) string {
	return twmerge.Merge("rounded-md border px-4 py-3 text-sm", flashClasses[category])
}
