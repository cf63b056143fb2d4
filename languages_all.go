package main

// Import all language packages to register them
import (
	_ "github.com/roveo/flexls/languages/flexia"
)
