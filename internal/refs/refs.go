// Package refs defines the opaque reference identifiers used to address
// entities in the session state.
package refs

import "github.com/google/uuid"

// ContentRef names a document (notebook, directory, file) record.
type ContentRef string

// KernelRef names a kernel record.
type KernelRef string

// KernelspecsRef names a kernel catalog entry.
type KernelspecsRef string

// HostRef names a host record.
type HostRef string

// CreateContentRef returns a fresh content reference.
func CreateContentRef() ContentRef { return ContentRef(uuid.New().String()) }

// CreateKernelRef returns a fresh kernel reference.
func CreateKernelRef() KernelRef { return KernelRef(uuid.New().String()) }

// CreateKernelspecsRef returns a fresh catalog reference.
func CreateKernelspecsRef() KernelspecsRef { return KernelspecsRef(uuid.New().String()) }

// CreateHostRef returns a fresh host reference.
func CreateHostRef() HostRef { return HostRef(uuid.New().String()) }
