package webgpu

// WGSL compute shaders for the float32 generator ops.
// Using string constants instead of embed for simplicity.

// workgroupSize is the default number of threads per workgroup.
const workgroupSize = 256

// fillShader writes a constant into every element.
const fillShader = `
@group(0) @binding(0) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
    value: f32,
}
@group(0) @binding(1) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = params.value;
    }
}
`

// rampShader writes start + i*step; shared by arange and linspace,
// which precompute the step on the host.
const rampShader = `
@group(0) @binding(0) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
    start: f32,
    step: f32,
}
@group(0) @binding(1) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = params.start + f32(idx) * params.step;
    }
}
`

// eyeShader writes ones along the k-th diagonal of a rows x cols
// matrix and zeros elsewhere.
const eyeShader = `
@group(0) @binding(0) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
    cols: u32,
    k: i32,
}
@group(0) @binding(1) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        let row = idx / params.cols;
        let col = idx % params.cols;
        if (i32(col) - i32(row) == params.k) {
            result[idx] = 1.0;
        } else {
            result[idx] = 0.0;
        }
    }
}
`

// copyShader copies elements from one contiguous buffer to another.
const copyShader = `
@group(0) @binding(0) var<storage, read> src: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = src[idx];
    }
}
`
