//go:build windows

package main

import (
	"errors"

	"golang.org/x/sys/windows"

	"github.com/dixieflatline76/Shelf/config"
	"github.com/dixieflatline76/Shelf/util/log"
)

var mutex windows.Handle

// acquireLock creates the named single-instance mutex.
func acquireLock() (bool, error) {
	name, err := windows.UTF16PtrFromString(config.AppName + "_SingleInstanceMutex")
	if err != nil {
		return false, err
	}

	h, err := windows.CreateMutex(nil, false, name)
	if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
		if h != 0 {
			windows.CloseHandle(h)
		}
		return false, nil
	}
	if err != nil {
		return false, err
	}

	mutex = h
	return true, nil
}

// releaseLock closes the mutex created by acquireLock.
func releaseLock() {
	if mutex == 0 {
		return
	}
	if err := windows.ReleaseMutex(mutex); err != nil {
		log.Debugf("Failed to release mutex: %v", err)
	}
	if err := windows.CloseHandle(mutex); err != nil {
		log.Printf("Failed to close mutex handle: %v", err)
	}
	mutex = 0
}
